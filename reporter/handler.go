// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reporter

// Handler decides, each time an error is reported, whether the caller should
// keep going. The default Handler stops at the first error, which is what
// the CORE's single-pass pipeline does: tokenize/parse/emit are each total
// functions from input to (result, error), never (result, []error).
//
// A caller embedding this pipeline into interactive tooling can supply a
// Handler that records the error and returns nil to keep going, in which
// case later stages may see a partially-populated AST around the error site.
type Handler struct {
	report func(*Error) error
	errs   []*Error
}

// NewHandler builds a Handler that stops at the first reported error.
func NewHandler() *Handler {
	return &Handler{}
}

// NewHandlerFunc builds a Handler whose stop/continue decision is delegated
// to report: returning a non-nil error aborts, returning nil keeps going.
func NewHandlerFunc(report func(*Error) error) *Handler {
	return &Handler{report: report}
}

// HandleError records err and returns either err itself (abort) or nil
// (continue), per the configured policy.
func (h *Handler) HandleError(err *Error) error {
	h.errs = append(h.errs, err)
	if h.report != nil {
		return h.report(err)
	}
	return err
}

// Errors returns every error recorded so far, in report order.
func (h *Handler) Errors() []*Error {
	return h.errs
}

// Error returns the first recorded error, or nil if none were recorded. It
// mirrors the shape callers expect from a single terminal pipeline error.
func (h *Handler) Error() error {
	if len(h.errs) == 0 {
		return nil
	}
	return h.errs[0]
}
