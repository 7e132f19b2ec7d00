// Copyright 2025 walteh LLC
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

/*
Package operation runs one batch over a source root.

	+-------------+
	|  Classify   |
	|  (Select)   |
	+------+------+
	       |
	+------+------+
	|  Transform  |
	| (Rule Sets) |
	+------+------+
	       |
	+------+------+
	|  Write back |
	|  (status)   |
	+-------------+

Each candidate is read once during classification, transformed by the rule
set of its cohort and written at most once. Failures are recorded on the
report and never stop the batch. With more than one job the transforms run
on an errgroup, results land by index so the report keeps discovery order.
*/
package operation
