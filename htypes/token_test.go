package htypes

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "struct",
			input: "STRUCT<a:INT,b:STRING>",
			want: []Token{
				{Position: 0, Text: "STRUCT", IsWord: true},
				{Position: 6, Text: "<", IsWord: false},
				{Position: 7, Text: "a", IsWord: true},
				{Position: 8, Text: ":", IsWord: false},
				{Position: 9, Text: "INT", IsWord: true},
				{Position: 12, Text: ",", IsWord: false},
				{Position: 13, Text: "b", IsWord: true},
				{Position: 14, Text: ":", IsWord: false},
				{Position: 15, Text: "STRING", IsWord: true},
				{Position: 21, Text: ">", IsWord: false},
			},
		},
		{
			name:  "whitespace is skipped",
			input: " decimal ( 20 , 10 ) ",
			want: []Token{
				{Position: 1, Text: "decimal", IsWord: true},
				{Position: 9, Text: "(", IsWord: false},
				{Position: 11, Text: "20", IsWord: true},
				{Position: 14, Text: ",", IsWord: false},
				{Position: 16, Text: "10", IsWord: true},
				{Position: 19, Text: ")", IsWord: false},
			},
		},
		{
			name:  "underscores belong to words",
			input: "interval_day_time",
			want: []Token{
				{Position: 0, Text: "interval_day_time", IsWord: true},
			},
		},
		{
			name:  "other characters separate words",
			input: "a-b.c",
			want: []Token{
				{Position: 0, Text: "a", IsWord: true},
				{Position: 2, Text: "b", IsWord: true},
				{Position: 4, Text: "c", IsWord: true},
			},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tokenize(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenizePositionsIncrease(t *testing.T) {
	tokens := Tokenize("map<string, struct<x:array<int>, y:decimal(10,2)>>")
	for i := 1; i < len(tokens); i++ {
		assert.Greater(t, tokens[i].Position, tokens[i-1].Position)
	}
}

func TestNewToken(t *testing.T) {
	tok, err := NewToken(3, "int", true)
	assert.NoError(t, err)
	assert.Equal(t, "3:int", tok.String())

	_, err = NewToken(3, "", true)
	assert.Equal(t, ErrEmptyToken, errors.Cause(err))
}
