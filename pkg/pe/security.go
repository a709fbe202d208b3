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
	"crypto/x509"
	"encoding/hex"
	"strings"

	"go.mozilla.org/pkcs7"
)

const (
	// maxCertificates caps the number of WIN_CERTIFICATE entries walked in
	// the security directory
	maxCertificates = 16

	// winCertTypePKCS7 designates the WIN_CERT_TYPE_PKCS_SIGNED_DATA wrapper
	winCertTypePKCS7 = 0x0002
	// winCertHeaderSize is the size of the WIN_CERTIFICATE header preceding
	// the signature blob
	winCertHeaderSize = 8
)

// Signature describes a single authenticode signature extracted from the
// certificate table. Only the leaf signing certificate fields are decoded.
// No cryptographic trust chain or revocation checking is ever performed,
// extraction and time-validity queries are the entire surface.
type Signature struct {
	// Issuer is the distinguished name of the certificate issuer.
	Issuer string `json:"issuer"`
	// Subject is the distinguished name of the certificate subject.
	Subject string `json:"subject"`
	// Version is the encoded certificate version.
	Version int `json:"version"`
	// Algorithm is the signature algorithm in its OpenSSL long form,
	// e.g. sha256WithRSAEncryption.
	Algorithm string `json:"algorithm"`
	// Serial is the certificate serial number as colon-separated
	// lowercase hex octets.
	Serial string `json:"serial"`
	// NotBefore is the start of the validity window as Unix timestamp.
	NotBefore int64 `json:"not_before"`
	// NotAfter is the end of the validity window as Unix timestamp.
	NotAfter int64 `json:"not_after"`
}

// ValidOn determines whether the timestamp falls inside the closed
// certificate validity interval.
func (s Signature) ValidOn(ts int64) bool {
	return s.NotBefore <= ts && ts <= s.NotAfter
}

// parseSecurity extracts signature records from the certificate data
// directory. Unlike every other directory, the security directory is
// addressed by raw file offset, so no section translation takes place.
// Each entry is a WIN_CERTIFICATE wrapper around a PKCS#7 signed-data
// blob. A blob that fails to decode degrades that entry only.
func parseSecurity(c *cursor, hdr *header) []Signature {
	dir, ok := hdr.directory(dirSecurity)
	if !ok {
		return nil
	}

	sigs := make([]Signature, 0)
	offset := uint64(dir.VirtualAddress)
	end := offset + uint64(dir.Size)

	for i := 0; i < maxCertificates && offset+winCertHeaderSize <= end; i++ {
		length, ok := c.uint32(offset)
		if !ok || uint64(length) < winCertHeaderSize {
			break
		}
		// the wrapper may not claim bytes past the declared directory end
		if uint64(length) > end-offset {
			length = uint32(end - offset)
		}
		certType, ok := c.uint16(offset + 6)
		if !ok {
			break
		}
		blob, ok := c.slice(offset+winCertHeaderSize, uint64(length)-winCertHeaderSize)
		if !ok {
			directoryParseErrors.Add(1)
			break
		}
		if certType == winCertTypePKCS7 {
			if sig, ok := decodeAuthenticode(blob); ok {
				sigs = append(sigs, sig)
			} else {
				directoryParseErrors.Add(1)
			}
		}
		// entries are aligned on 8-byte boundaries
		offset += (uint64(length) + 7) &^ 7
	}
	return sigs
}

// decodeAuthenticode parses the PKCS#7 blob and derives the signature
// record from the leaf signing certificate.
func decodeAuthenticode(blob []byte) (Signature, bool) {
	p7, err := pkcs7.Parse(blob)
	if err != nil {
		return Signature{}, false
	}
	cert := p7.GetOnlySigner()
	if cert == nil {
		cert = leafCertificate(p7.Certificates)
	}
	if cert == nil {
		return Signature{}, false
	}
	return Signature{
		Issuer:    cert.Issuer.String(),
		Subject:   cert.Subject.String(),
		Version:   cert.Version,
		Algorithm: sigAlgorithmName(cert.SignatureAlgorithm),
		Serial:    formatSerial(cert.SerialNumber.Bytes()),
		NotBefore: cert.NotBefore.Unix(),
		NotAfter:  cert.NotAfter.Unix(),
	}, true
}

// leafCertificate picks the certificate that does not issue any other
// certificate in the bag, i.e. the end-entity signing certificate. Falls
// back to the first certificate when every candidate issues another one.
func leafCertificate(certs []*x509.Certificate) *x509.Certificate {
	if len(certs) == 0 {
		return nil
	}
	for _, cand := range certs {
		issuesOther := false
		for _, other := range certs {
			if other == cand {
				continue
			}
			if other.Issuer.String() == cand.Subject.String() {
				issuesOther = true
				break
			}
		}
		if !issuesOther {
			return cand
		}
	}
	return certs[0]
}

// formatSerial renders the serial number octets as colon-separated
// lowercase hex.
func formatSerial(serial []byte) string {
	if len(serial) == 0 {
		return "00"
	}
	var sb strings.Builder
	for i, b := range serial {
		if i > 0 {
			sb.WriteByte(':')
		}
		sb.WriteString(hex.EncodeToString([]byte{b}))
	}
	return sb.String()
}

// sigAlgorithmName maps the x509 signature algorithm to the OpenSSL
// long-name form conventionally reported by PE analysis tooling.
func sigAlgorithmName(algo x509.SignatureAlgorithm) string {
	switch algo {
	case x509.MD2WithRSA:
		return "md2WithRSAEncryption"
	case x509.MD5WithRSA:
		return "md5WithRSAEncryption"
	case x509.SHA1WithRSA:
		return "sha1WithRSAEncryption"
	case x509.SHA256WithRSA:
		return "sha256WithRSAEncryption"
	case x509.SHA384WithRSA:
		return "sha384WithRSAEncryption"
	case x509.SHA512WithRSA:
		return "sha512WithRSAEncryption"
	case x509.SHA256WithRSAPSS, x509.SHA384WithRSAPSS, x509.SHA512WithRSAPSS:
		return "rsassaPss"
	case x509.DSAWithSHA1:
		return "dsaWithSHA1"
	case x509.DSAWithSHA256:
		return "dsa_with_SHA256"
	case x509.ECDSAWithSHA1:
		return "ecdsa-with-SHA1"
	case x509.ECDSAWithSHA256:
		return "ecdsa-with-SHA256"
	case x509.ECDSAWithSHA384:
		return "ecdsa-with-SHA384"
	case x509.ECDSAWithSHA512:
		return "ecdsa-with-SHA512"
	case x509.PureEd25519:
		return "ED25519"
	default:
		return "unknown"
	}
}
