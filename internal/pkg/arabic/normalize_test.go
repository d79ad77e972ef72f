package arabic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEquivalenceClasses(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{"alef hamza above", "أسد", "اسد"},
		{"alef hamza below", "إبرة", "ابرة"},
		{"alef madda", "آمال", "امال"},
		{"teh marbuta vs heh", "مدرسة", "مدرسه"},
		{"alef maksura vs yeh", "مستشفى", "مستشفي"},
		{"yeh hamza", "بئر", "بير"},
		{"waw hamza", "مؤمن", "مومن"},
		{"diacritics stripped", "كَتَبَ", "كتب"},
		{"shadda stripped", "سلّم", "سلم"},
		{"tatweel removed", "جـمـيـل", "جميل"},
		{"surrounding whitespace", "  قمر ", "قمر"},
		{"internal whitespace collapsed", "عبد  الله", "عبد الله"},
		{"latin case folded", "Sahara", "sahara"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Normalize(tt.a), Normalize(tt.b))
			assert.True(t, Equal(tt.a, tt.b))
		})
	}
}

func TestNormalizeDistinctWordsStayDistinct(t *testing.T) {
	assert.NotEqual(t, Normalize("قمر"), Normalize("شمس"))
	assert.False(t, Equal("بحر", "نهر"))
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   "))
}
