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

import "math"

// entropy calculates the Shannon entropy of the section's raw data.
// High scores indicate a high variety of byte frequencies, typical of
// packed or encrypted payloads.
func entropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	entropy := 0.0
	frq := make(map[byte]int, 256)

	for _, b := range data {
		frq[b]++
	}

	for _, value := range frq {
		k := float64(value) / float64(len(data))
		entropy -= k * math.Log2(k)
	}

	return entropy
}
