package game

import (
	"fmt"
	"math/rand"
	"time"
)

// Picker selects random solutions.
type Picker struct {
	rnd *rand.Rand
}

// NewPicker returns a Picker seeded with the current time.
func NewPicker() *Picker {
	return NewPickerWithSeed(time.Now().UnixNano())
}

// NewPickerWithSeed returns a deterministic Picker.
func NewPickerWithSeed(seed int64) *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(seed))}
}

// Pick returns a uniformly chosen word.
func (p *Picker) Pick(words []string) (string, error) {
	if len(words) == 0 {
		return "", fmt.Errorf("no solutions loaded")
	}
	return words[p.rnd.Intn(len(words))], nil
}
