// Copyright 2025 go-perflab Authors
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

package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ajroetker/go-perflab/bench"
)

// record is the JSON form of a result on the stream.
type record struct {
	bench.Result
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Encode returns the JSON document published for r.
func Encode(r bench.Result) ([]byte, error) {
	rec := record{Result: r, OK: r.OK()}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	}
	return json.Marshal(rec)
}

// RedisSink appends every result to a Redis stream.
type RedisSink struct {
	client redis.UniversalClient
	stream string
}

// NewRedisSink connects to addr and checks the connection with PING.
func NewRedisSink(ctx context.Context, addr, stream string) (*RedisSink, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("report: redis %s: %w", addr, err)
	}
	return &RedisSink{client: client, stream: stream}, nil
}

// NewRedisSinkFromClient publishes through an existing client.
func NewRedisSinkFromClient(client redis.UniversalClient, stream string) *RedisSink {
	return &RedisSink{client: client, stream: stream}
}

// Publish implements bench.Sink.
func (s *RedisSink) Publish(ctx context.Context, r bench.Result) error {
	b, err := Encode(r)
	if err != nil {
		return fmt.Errorf("report: encode %s: %w", r.Variant, err)
	}
	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"variant": r.Variant,
			"dim":     r.Dim,
			"data":    b,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("report: xadd %s: %w", s.stream, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisSink) Close() error {
	return s.client.Close()
}
