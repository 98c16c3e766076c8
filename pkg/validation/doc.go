// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation checks user-provided inputs before any work is done
// with them.
//
// Smooshed Morse targets are checked for their alphabet (only '.' and '-')
// and their exact length; words are checked for letters only. Validation is
// cheap and always runs before a search starts, so malformed input costs no
// search work at all.
package validation
