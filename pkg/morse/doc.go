// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package morse provides the Morse code table used by smooshedmorse.
//
// A code is stored as Bits, a slice of booleans where a dot is false and a
// dash is true. Smooshed Morse is the concatenation of letter codes with no
// separator between them, so a smooshed string cannot in general be split
// back into letters without search: the table is not prefix-free ("e" is
// ".", "i" is "..", "s" is "...").
//
// # Basic Usage
//
//	table := morse.Default()
//	bits, err := table.EncodeString("horse")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(bits) // ....---.-.......
//
// # Thread Safety
//
// A Table is immutable after construction and safe for concurrent use.
package morse
