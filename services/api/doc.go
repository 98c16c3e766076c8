// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package api serves smooshed Morse encoding, decoding, permutation recovery
// and the word-list challenges over HTTP.
//
// Routes (all JSON):
//
//	GET  /v1/health
//	GET  /v1/encode/:word
//	GET  /v1/decode?code=-....--....
//	POST /v1/permutations          {"target": "..."}; empty target is random
//	GET  /v1/challenges/:name      ?letters=&dash_run=&max_words=
//	GET  /metrics
//
// Decode and the challenges need a word index; without one they answer 503.
//
// Every response carries an X-Request-ID header. A request ID sent by the
// client is echoed back, otherwise one is generated.
package api
