package casing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		want  bool
	}{
		{"get_user", Snake, true},
		{"getUser", Snake, false},
		{"getUser", Camel, true},
		{"GetUser", Camel, false},
		{"GetUser", Pascal, true},
		{"MAX_RETRIES", Upper, true},
		{"MAX_RETRIES", Snake, false},
		{"anything-goes", None, true},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+string(tt.style), func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.name, tt.style))
		})
	}
}

func TestCountFirstMatchWins(t *testing.T) {
	// "data" satisfies both snake and camel patterns; it must only count
	// once, as snake.
	counts := Count([]string{"data", "getData", "User", "MAX"})
	assert.Equal(t, 1, counts[Snake])
	assert.Equal(t, 1, counts[Camel])
	assert.Equal(t, 1, counts[Pascal])
	assert.Equal(t, 0, counts[Upper])
}

func TestDominant(t *testing.T) {
	tests := []struct {
		label string
		names []string
		want  Style
	}{
		{"snake majority", []string{"get_user", "set_password", "validate_email"}, Snake},
		{"camel majority", []string{"getUser", "setPassword", "get_user"}, Camel},
		{"empty sample", nil, None},
		{"nothing matches", []string{"kebab-case", "with space!"}, None},
		{"tie resolves to snake", []string{"get_user", "getUser"}, Snake},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, Dominant(tt.names))
		})
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		want  string
	}{
		{"processData", Snake, "process_data"},
		{"ProcessData", Snake, "process_data"},
		{"process_data", Camel, "processData"},
		{"process_data", Pascal, "ProcessData"},
		{"processData", Upper, "PROCESS_DATA"},
		{"already_snake", Snake, "already_snake"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"->"+string(tt.style), func(t *testing.T) {
			assert.Equal(t, tt.want, Convert(tt.name, tt.style))
		})
	}
}
