package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Run field helpers shared by the engine and the commands

func Component(name string) Field {
	return String("component", name)
}

func Algorithm(name string) Field {
	return String("algorithm", name)
}

func RunID(id string) Field {
	return String("run_id", id)
}

func Vertices(n int) Field {
	return Int("vertices", n)
}

func Edges(m int) Field {
	return Int("edges", m)
}

func Iterations(n int) Field {
	return Int("iterations", n)
}

func Communities(n int) Field {
	return Int("communities", n)
}

func Modularity(q float64) Field {
	return Float64("modularity", q)
}

func Converged(ok bool) Field {
	return Bool("converged", ok)
}

func Seed(seed int64) Field {
	return Int64("seed", seed)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Path(p string) Field {
	return String("path", p)
}
