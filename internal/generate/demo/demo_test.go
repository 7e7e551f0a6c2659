package demo

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amphitopia/conch/internal/generate"
)

// newInstant returns a responder with the latency simulation disabled.
func newInstant() *Responder {
	return &Responder{
		rng:   rand.New(rand.NewSource(1)),
		delay: func(context.Context, time.Duration) {},
	}
}

func TestGenerateReturnsBucketMember(t *testing.T) {
	r := newInstant()

	messages := []string{
		"hello there",
		"what is the sky",
		"tell me about camels",
		"do you remember my grandparents?",
		"asdf qwerty",
	}
	for _, msg := range messages {
		got, err := r.Generate(context.Background(), generate.Request{Message: msg})
		require.NoError(t, err)
		assert.Contains(t, Responses(msg), got, "message %q", msg)
	}
}

func TestResponsesBucketRouting(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{"greeting", "Hello, conch", greetingResponses},
		{"greeting hey", "hey!", greetingResponses},
		{"walking", "what is running like", walkingResponses},
		{"sky", "tell me about the sky", skyResponses},
		{"camel", "what is a camel", camelResponses},
		{"pillow", "tell me about pillows", pillowResponses},
		{"land", "what is land", landResponses},
		{"bicycle", "what is a bike", bicycleResponses},
		{"tree", "tell me about trees", treeResponses},
		{"car", "what is a car", carResponses},
		{"sun", "tell me about sunlight", sunResponses},
		{"definition default", "what is a harmonica", archiveResponses},
		{"colony", "why does amphitopia exist", colonyResponses},
		{"ancestors", "what did my grandparents do", ancestorResponses},
		{"fallback", "zzz unrelated zzz", fallbackResponses},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Responses(tt.message))
		})
	}
}

func TestResponsesCaseInsensitive(t *testing.T) {
	assert.Equal(t, Responses("hello"), Responses("HELLO"))
	assert.Equal(t, Responses("what is the sky"), Responses("What Is The SKY"))
}

func TestBucketOrderGreetingWins(t *testing.T) {
	// "hi" appears inside a definition question; the greeting bucket is
	// checked first and wins.
	assert.Equal(t, greetingResponses, Responses("hi, what is a car"))
}

func TestGenerateConcurrent(t *testing.T) {
	r := newInstant()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := r.Generate(context.Background(), generate.Request{Message: "hello"})
				assert.NoError(t, err)
				assert.Contains(t, greetingResponses, got)
			}
		}()
	}
	wg.Wait()
}

func TestName(t *testing.T) {
	assert.Equal(t, "demo", New().Name())
}
