/*
 * Copyright 2024-2025 by the peview project authors
 * All Rights Reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package pe

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/binary"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mozilla.org/pkcs7"
)

var (
	testNotBefore = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	testNotAfter  = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
)

// buildAuthenticode signs an arbitrary payload with a throwaway
// certificate and wraps the PKCS#7 blob in a WIN_CERTIFICATE entry.
func buildAuthenticode(t *testing.T) []byte {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(0x1122),
		Subject: pkix.Name{
			CommonName:   "Acme Signing",
			Organization: []string{"Acme Corp"},
		},
		NotBefore:             testNotBefore,
		NotAfter:              testNotAfter,
		KeyUsage:              x509.KeyUsageDigitalSignature,
		SignatureAlgorithm:    x509.SHA256WithRSA,
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	sd, err := pkcs7.NewSignedData([]byte("image digest"))
	require.NoError(t, err)
	require.NoError(t, sd.AddSigner(cert, key, pkcs7.SignerInfoConfig{}))
	blob, err := sd.Finish()
	require.NoError(t, err)

	// WIN_CERTIFICATE wrapper, 8-byte aligned
	entry := make([]byte, (8+len(blob)+7)&^7)
	binary.LittleEndian.PutUint32(entry, uint32(8+len(blob)))
	binary.LittleEndian.PutUint16(entry[4:], 0x0200)
	binary.LittleEndian.PutUint16(entry[6:], winCertTypePKCS7)
	copy(entry[8:], blob)
	return entry
}

func TestParseSecurity(t *testing.T) {
	img := buildImage(imageOpts{certBlob: buildAuthenticode(t)})

	p, err := Parse(img, ModeFile, WithSecurity())
	require.NoError(t, err)

	require.Equal(t, 1, p.NumberOfSignatures())
	sig := p.Signatures[0]

	assert.Contains(t, sig.Subject, "Acme Signing")
	assert.Contains(t, sig.Issuer, "Acme Signing")
	assert.Equal(t, "11:22", sig.Serial)
	assert.Equal(t, "sha256WithRSAEncryption", sig.Algorithm)
	assert.Equal(t, testNotBefore.Unix(), sig.NotBefore)
	assert.Equal(t, testNotAfter.Unix(), sig.NotAfter)
}

func TestParseSecurityMalformedBlob(t *testing.T) {
	// a syntactically valid WIN_CERTIFICATE wrapping garbage degrades to
	// no signature records without faulting
	entry := make([]byte, 24)
	binary.LittleEndian.PutUint32(entry, 24)
	binary.LittleEndian.PutUint16(entry[4:], 0x0200)
	binary.LittleEndian.PutUint16(entry[6:], winCertTypePKCS7)

	img := buildImage(imageOpts{certBlob: entry})

	p, err := Parse(img, ModeFile, WithSecurity())
	require.NoError(t, err)
	assert.Zero(t, p.NumberOfSignatures())
}

func TestParseSecurityLengthExceedsDirectory(t *testing.T) {
	// a wrapper declaring more bytes than the directory holds must not
	// read past the declared directory end. The truncated blob fails to
	// decode and the entry degrades to no signature record
	blob := buildAuthenticode(t)
	img := buildImage(imageOpts{certBlob: blob})

	dirOffset := testNTOffset + 4 + 20 + 96
	putU32(img, dirOffset+dirSecurity*8+4, uint32(len(blob)/2))

	p, err := Parse(img, ModeFile, WithSecurity())
	require.NoError(t, err)
	assert.Zero(t, p.NumberOfSignatures())
}

func TestValidOn(t *testing.T) {
	sig := Signature{NotBefore: 1000, NotAfter: 2000}

	// the validity interval is closed on both ends
	assert.True(t, sig.ValidOn(1000))
	assert.True(t, sig.ValidOn(1500))
	assert.True(t, sig.ValidOn(2000))
	assert.False(t, sig.ValidOn(999))
	assert.False(t, sig.ValidOn(2001))
}

func TestFormatSerial(t *testing.T) {
	assert.Equal(t, "00", formatSerial(nil))
	assert.Equal(t, "0a", formatSerial([]byte{0x0a}))
	assert.Equal(t, "33:00:00:02", formatSerial([]byte{0x33, 0x00, 0x00, 0x02}))
}

func TestSigAlgorithmName(t *testing.T) {
	assert.Equal(t, "sha1WithRSAEncryption", sigAlgorithmName(x509.SHA1WithRSA))
	assert.Equal(t, "sha256WithRSAEncryption", sigAlgorithmName(x509.SHA256WithRSA))
	// PSS signatures are not plain RSA encryption
	assert.Equal(t, "rsassaPss", sigAlgorithmName(x509.SHA256WithRSAPSS))
	assert.Equal(t, "rsassaPss", sigAlgorithmName(x509.SHA512WithRSAPSS))
	assert.Equal(t, "ecdsa-with-SHA256", sigAlgorithmName(x509.ECDSAWithSHA256))
	assert.Equal(t, "unknown", sigAlgorithmName(x509.UnknownSignatureAlgorithm))
}

func TestLeafCertificate(t *testing.T) {
	ca := &x509.Certificate{
		Subject: pkix.Name{CommonName: "Acme Root CA"},
		Issuer:  pkix.Name{CommonName: "Acme Root CA"},
	}
	leaf := &x509.Certificate{
		Subject: pkix.Name{CommonName: "Acme Signing"},
		Issuer:  pkix.Name{CommonName: "Acme Root CA"},
	}

	assert.Nil(t, leafCertificate(nil))
	assert.Same(t, leaf, leafCertificate([]*x509.Certificate{ca, leaf}))
	assert.Same(t, leaf, leafCertificate([]*x509.Certificate{leaf, ca}))
}
