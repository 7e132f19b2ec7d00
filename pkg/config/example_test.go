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

package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/actorstrip/pkg/config"
)

func ExampleLoad_yaml() {
	ctx := context.Background()

	// Create a temporary YAML config file
	dir, err := os.MkdirTemp("", "actorstrip-example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, ".actorstrip.yaml")
	if err := os.WriteFile(path, []byte("root: services\nactor:\n  param_name: caller\n"), 0644); err != nil {
		fmt.Println("error:", err)
		return
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(cfg.Root, cfg.Actor.ParamName, cfg.Marker)
	// Output: services caller ActorContext
}
