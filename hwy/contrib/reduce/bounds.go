// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reduce

// paired returns b[:len(a)]. The three-index reslice caps b at its length
// first, so a b shorter than a panics even when it has spare capacity.
func paired[T, U any](a []T, b []U) []U {
	return b[:len(b):len(b)][:len(a)]
}
