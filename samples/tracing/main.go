package main

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"

	"github.com/quarkframe/go-accelrt/backend"
	"github.com/quarkframe/go-accelrt/backend/sim"
	"github.com/quarkframe/go-accelrt/client"
	"github.com/quarkframe/go-accelrt/core"
	"github.com/quarkframe/go-accelrt/dtype"
)

func main() {
	ctx := context.Background()

	r := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String("go-accelrt sample"),
		semconv.ServiceVersionKey.String("v0.1.0"),
		attribute.String("environment", "sample"),
	)

	stdoutexp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		panic(err)
	}

	oclient := otlptracehttp.NewClient(otlptracehttp.WithEndpoint("localhost:4318"), otlptracehttp.WithInsecure())
	exp, err := otlptrace.New(ctx, oclient)
	if err != nil {
		panic(err)
	}

	tp := trace.NewTracerProvider(
		trace.WithSyncer(stdoutexp),
		trace.WithBatcher(exp),
		trace.WithResource(r),
	)

	otel.SetTracerProvider(tp)

	reg := sim.NewRegistry()
	if err := reg.RegisterKernel("scale", Scale); err != nil {
		panic(err)
	}

	b := sim.NewSimBackend(reg,
		sim.WithTaskLatency(time.Millisecond*25),
		sim.WithBackendOptions(backend.WithTracerProvider(tp)),
	)

	c := client.New(b)

	runProgram(ctx, c)

	c.Close()
	b.Close()

	tp.Shutdown(context.Background())
}

func runProgram(ctx context.Context, c *client.Client) {
	program := &core.Program{Name: "scale", DType: dtype.Int8, Shape: []int64{8}}

	in := core.NewBuffer(dtype.Int8, 8)
	for i := range in.Data {
		in.Data[i] = byte(i)
	}

	// Blocking on the future is recorded as its own span, correlated with
	// the task execution span emitted by the backend
	result := c.Execute(ctx, program, in).Wait()
	if result.Err != nil {
		log.Fatal(result.Err)
	}

	log.Println("Scaled:", result.Outputs[0].Data)
}

func Scale(ctx context.Context, inputs []*core.Buffer) ([]*core.Buffer, error) {
	in := inputs[0]

	out := core.NewBuffer(in.DType, in.Dims...)
	for i, v := range in.Data {
		out.Data[i] = v * 3
	}

	return []*core.Buffer{out}, nil
}
