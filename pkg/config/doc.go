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
Package config loads the settings for an actorstrip run.

	        +-------------+
	        |   Default   |
	        +------+------+
	               |
	   +-----------+-----------+
	   |           |           |
	+--+---+   +---+--+   +----+--+
	| YAML |   | JSON |   |  HCL  |
	+------+   +------+   +-------+

Every parser decodes on top of Default, so a file only names what it
overrides. YAML and JSON reject unknown keys. HCL files may read the
environment through the env object:

	root = "${env.PROJECT_DIR}/src/main/java"

	actor {
	  param_name = "caller"
	}
*/
package config
