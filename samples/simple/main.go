package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/quarkframe/go-accelrt/backend"
	"github.com/quarkframe/go-accelrt/backend/sim"
	"github.com/quarkframe/go-accelrt/client"
	"github.com/quarkframe/go-accelrt/core"
	"github.com/quarkframe/go-accelrt/dtype"
)

func main() {
	ctx := context.Background()

	r := sim.NewRegistry()
	if err := r.RegisterKernel("vecadd", VecAdd); err != nil {
		panic(err)
	}

	b := sim.NewSimBackend(r,
		sim.WithDeviceKind("gpu"),
		sim.WithInitDelay(time.Millisecond*100),
		sim.WithTaskLatency(time.Millisecond*5),
	)
	defer b.Close()

	c := client.New(b)
	defer c.Close()

	if err := c.WaitReady(ctx, time.Second*5); err != nil {
		panic(err)
	}

	desc, err := b.DeviceDescription(ctx)
	if err != nil {
		panic(err)
	}
	log.Println("Device ready:", desc.DebugString)

	program := &core.Program{Name: "vecadd", DType: dtype.Float32, Shape: []int64{4}}

	x := floatBuffer(1.5, 2.5, 3.5, 4.5)
	y := floatBuffer(1.0, 1.0, 1.0, 1.0)

	f := c.Execute(ctx, program, x, y)

	// Callbacks fire on resolution, independently of any Wait call
	f.OnReady(func(result *backend.Result) {
		log.Println("Task finished on device, took:", result.Duration)
	})

	result := f.Wait()
	if result.Err != nil {
		log.Fatal(result.Err)
	}

	log.Println("Result:", floats(result.Outputs[0]))
}

func VecAdd(ctx context.Context, inputs []*core.Buffer) ([]*core.Buffer, error) {
	if len(inputs) != 2 {
		return nil, fmt.Errorf("vecadd takes two inputs, got %d", len(inputs))
	}

	x, y := inputs[0], inputs[1]
	if x.NumElements() != y.NumElements() {
		return nil, fmt.Errorf("shape mismatch: %v vs %v", x.Dims, y.Dims)
	}

	out := core.NewBuffer(x.DType, x.Dims...)
	for i := int64(0); i < x.NumElements(); i++ {
		sum := floatAt(x, i) + floatAt(y, i)
		binary.LittleEndian.PutUint32(out.Data[i*4:], math.Float32bits(sum))
	}

	return []*core.Buffer{out}, nil
}

func floatBuffer(values ...float32) *core.Buffer {
	b := core.NewBuffer(dtype.Float32, int64(len(values)))
	for i, v := range values {
		binary.LittleEndian.PutUint32(b.Data[i*4:], math.Float32bits(v))
	}

	return b
}

func floatAt(b *core.Buffer, i int64) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b.Data[i*4:]))
}

func floats(b *core.Buffer) []float32 {
	out := make([]float32, b.NumElements())
	for i := range out {
		out[i] = floatAt(b, int64(i))
	}

	return out
}
