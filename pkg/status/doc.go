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
Package status tracks per-file outcomes and owns the write side of a run.

	        +-------------+
	        |   Report    |
	        | (Outcomes)  |
	        +------+------+
	               |
	   +-----------+-----------+
	   |                       |
	+--+--------+        +-----+-----+
	|  Manager  |        | Formatter |
	|  (Files)  |        |  (Lines)  |
	+-----------+        +-----------+

A Report is filled once, in discovery order, after every file has been
processed. Manager writes through a temp file and rename so a failed write
never leaves a truncated source file behind.
*/
package status
