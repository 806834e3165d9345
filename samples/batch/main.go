package main

import (
	"context"
	"log"
	"time"

	"github.com/quarkframe/go-accelrt/backend"
	"github.com/quarkframe/go-accelrt/backend/sim"
	"github.com/quarkframe/go-accelrt/client"
	"github.com/quarkframe/go-accelrt/core"
	"github.com/quarkframe/go-accelrt/dtype"
)

const batchCount = 8

func main() {
	ctx := context.Background()

	r := sim.NewRegistry()
	if err := r.RegisterKernel("negate", Negate); err != nil {
		panic(err)
	}

	// Two tasks at a time to show queueing on a constrained device
	b := sim.NewSimBackend(r,
		sim.WithTaskLatency(time.Millisecond*20),
		sim.WithBackendOptions(backend.WithMaxParallelTasks(2)),
	)
	defer b.Close()

	c := client.New(b)
	defer c.Close()

	program := &core.Program{Name: "negate", DType: dtype.Int8, Shape: []int64{4}}

	batches := make([][]*core.Buffer, batchCount)
	for i := range batches {
		in := core.NewBuffer(dtype.Int8, 4)
		for j := range in.Data {
			in.Data[j] = byte(i + j)
		}
		batches[i] = []*core.Buffer{in}
	}

	start := time.Now()

	results, err := c.ExecuteBatch(ctx, program, batches)
	if err != nil {
		log.Fatal(err)
	}

	for i, result := range results {
		log.Printf("batch %d: %v (device time %v)", i, result.Outputs[0].Data, result.Duration)
	}

	log.Println("Executed", len(results), "batches in", time.Since(start))
}

func Negate(ctx context.Context, inputs []*core.Buffer) ([]*core.Buffer, error) {
	in := inputs[0]

	out := core.NewBuffer(in.DType, in.Dims...)
	for i, v := range in.Data {
		out.Data[i] = -v
	}

	return []*core.Buffer{out}, nil
}
