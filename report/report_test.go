package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-perflab/bench"
	"github.com/ajroetker/go-perflab/config"
	"github.com/ajroetker/go-perflab/kernels"
)

func sampleReport() *bench.Report {
	return &bench.Report{
		Team:    config.Team(),
		Counter: "rdtsc",
		Summaries: []bench.Summary{
			{
				Variant:     "naive_rotate",
				Description: "Naive baseline implementation",
				Kind:        kernels.KindRotate,
				Results: []bench.Result{
					{Variant: "naive_rotate", Kind: "rotate", Dim: 1024, UserMicros: 12345, Cycles: 9876543, CPE: 9.42, Speedup: 1},
				},
				MeanSpeedup: 1,
			},
			{
				Variant:     "blocked_rotate",
				Description: "16x16 tiles, dim-1 hoisted",
				Kind:        kernels.KindRotate,
				Results: []bench.Result{
					{Variant: "blocked_rotate", Kind: "rotate", Dim: 1024, UserMicros: 2000, Cycles: 3000000, CPE: 2.86, Speedup: 3.29,
						Err: errors.New("blocked_rotate: dim 1024: mismatch")},
				},
			},
		},
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "Team: G38049444")
	assert.Contains(t, out, "Member: Lauren Schmidt <laurenschmidt@gwu.edu>")
	assert.Contains(t, out, "Counter: rdtsc")
	assert.Contains(t, out, "naive_rotate: Naive baseline implementation")
	assert.Contains(t, out, "9,876,543")
	assert.Contains(t, out, "1,024")
	assert.Contains(t, out, "WRONG")
	assert.Contains(t, out, "FAILED blocked_rotate: dim 1024: mismatch")
	assert.Regexp(t, `naive_rotate\s+rotate\s+mean speedup 1\.00`, out)
}

func TestEncode(t *testing.T) {
	r := sampleReport().Summaries[1].Results[0]
	b, err := Encode(r)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "blocked_rotate", got["variant"])
	assert.Equal(t, "rotate", got["kind"])
	assert.EqualValues(t, 1024, got["dim"])
	assert.EqualValues(t, 3000000, got["cycles"])
	assert.Equal(t, false, got["ok"])
	assert.Equal(t, "blocked_rotate: dim 1024: mismatch", got["error"])

	b, err = Encode(sampleReport().Summaries[0].Results[0])
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, true, got["ok"])
}

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisSink_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisSink(ctx, "127.0.0.1:1", "perflab:results")
	assert.Error(t, err)

	sink := NewRedisSinkFromClient(unreachableClient(), "perflab:results")
	defer sink.Close()
	err = sink.Publish(ctx, sampleReport().Summaries[0].Results[0])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xadd perflab:results")
}

func TestRedisSink_Publish(t *testing.T) {
	server := miniredis.RunT(t)
	ctx := context.Background()

	sink, err := NewRedisSink(ctx, server.Addr(), "perflab:results")
	require.NoError(t, err)
	defer sink.Close()

	results := []bench.Result{
		sampleReport().Summaries[0].Results[0],
		sampleReport().Summaries[1].Results[0],
	}
	for _, r := range results {
		require.NoError(t, sink.Publish(ctx, r))
	}

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	msgs, err := client.XRange(ctx, "perflab:results", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, len(results))

	for i, msg := range msgs {
		want := results[i]
		assert.Equal(t, want.Variant, msg.Values["variant"])
		assert.Equal(t, "1024", msg.Values["dim"])

		data, ok := msg.Values["data"].(string)
		require.True(t, ok, "data field is %T", msg.Values["data"])

		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(data), &got))
		assert.Equal(t, want.Variant, got["variant"])
		assert.Equal(t, "rotate", got["kind"])
		assert.EqualValues(t, want.Dim, got["dim"])
		assert.EqualValues(t, want.Cycles, got["cycles"])
		assert.EqualValues(t, want.UserMicros, got["user_us"])
		assert.Equal(t, want.OK(), got["ok"])
	}

	// Nothing leaks into other keys.
	assert.Equal(t, []string{"perflab:results"}, server.Keys())
}

var _ bench.Sink = (*RedisSink)(nil)
