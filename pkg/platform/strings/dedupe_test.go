package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil", input: nil, expected: nil},
		{name: "only blanks", input: []string{"", "  "}, expected: nil},
		{name: "trims and keeps order", input: []string{" b ", "a", "b"}, expected: []string{"b", "a"}},
		{name: "case sensitive", input: []string{"Broker", "broker"}, expected: []string{"Broker", "broker"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList("", ","))
	assert.Nil(t, SplitList("   ", ","))
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, SplitList("kafka-1:9092, kafka-2:9092,,kafka-1:9092", ","))
}
