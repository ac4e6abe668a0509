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

func Uint64(key string, value uint64) Field {
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

// Domain field helpers

func Component(name string) Field {
	return String("component", name)
}

func GraphID(id string) Field {
	return String("graph_id", id)
}

func TechnologyID(id string) Field {
	return String("technology_id", id)
}

func FuelID(id string) Field {
	return String("fuel_id", id)
}

func Label(l string) Field {
	return String("label", l)
}

func Index(prefix string) Field {
	return String("index", prefix)
}

func Layer(n int) Field {
	return Int("layer", n)
}

func SourceLocation(loc string) Field {
	return String("source", loc)
}

func Operation(op string) Field {
	return String("operation", op)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}
