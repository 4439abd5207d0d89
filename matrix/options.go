// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults for Dense storage.
//
// Notes:
//   - Numeric policy is explicit: validateNaNInf controls whether Set()/
//     ingestion rejects NaN/Inf at all.
package matrix

// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
const DefaultValidateNaNInf = true
