/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import "reflect"

// Op names a dispatcher operation for observers.
type Op string

const (
	// OpProbe is CanBe.
	OpProbe Op = "probe"
	// OpView is As / MustAs.
	OpView Op = "view"
	// OpViewMut is AsMut / MustAsMut.
	OpViewMut Op = "view_mut"
	// OpInto is the owned downcast.
	OpInto Op = "into"
)

// Observer is notified of cast outcomes. Implementations must be safe for
// concurrent use and must not block.
type Observer interface {
	ObserveCast(op Op, src, target reflect.Type, ok bool)
}
