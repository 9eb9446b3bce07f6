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

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/idevyatovsky-hpmd/haconfig/pkg/parser/parserconfig"
)

// ParseAll parses many independent configuration buffers concurrently.
//
// Each parse is the same pure, all-or-nothing operation as
// ParseFromString; buffers share nothing but the parse cache. The first
// failure cancels the remaining work and ParseAll returns that error
// wrapped with the buffer's name; no partial result map is returned.
func (p *Parser) ParseAll(ctx context.Context, configs map[string]string) (map[string]*parserconfig.Configuration, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	var mu sync.Mutex
	out := make(map[string]*parserconfig.Configuration, len(configs))

	for name, text := range configs {
		name, text := name, text
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			conf, err := p.ParseFromString(text)
			if err != nil {
				return fmt.Errorf("parse %s: %w", name, err)
			}
			mu.Lock()
			out[name] = conf
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
