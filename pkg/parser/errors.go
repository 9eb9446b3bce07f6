// Copyright 2025 Philipp Hossner
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

package parser

import "fmt"

// EmptyInputError reports an empty or whitespace-only configuration
// buffer. Rejected explicitly rather than silently producing an empty
// Configuration.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "configuration text is empty"
}

// MissingAddressError reports a frontend or listen section that declares
// neither a header service address nor any bind line. Section is the
// section keyword ("frontend" or "listen"), Proxy the section name.
type MissingAddressError struct {
	Section string
	Proxy   string
}

func (e *MissingAddressError) Error() string {
	return fmt.Sprintf("%s %q specifies no service address and has no bind line", e.Section, e.Proxy)
}
