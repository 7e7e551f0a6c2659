// Package demo implements the Generator interface with a fixed response
// table, so the conch works with no model server and no credentials.
//
// Replies are chosen by case-insensitive keyword matching against ordered
// topic buckets, then picked uniformly at random within the bucket. A short
// random delay stands in for network latency so the demo feels like the
// model-backed backends.
package demo

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/amphitopia/conch/internal/generate"
)

// Responder serves pre-written conch replies. It is safe for concurrent use:
// the rng is guarded by a mutex since rand.Rand itself is not.
type Responder struct {
	mu    sync.Mutex
	rng   *rand.Rand
	delay func(ctx context.Context, d time.Duration)
}

// New creates a demo responder with simulated latency.
func New() *Responder {
	return &Responder{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		delay: sleepCtx,
	}
}

// Name returns the backend identifier.
func (r *Responder) Name() string { return string(generate.BackendDemo) }

// Generate picks a canned reply for the message's topic bucket.
func (r *Responder) Generate(ctx context.Context, req generate.Request) (string, error) {
	// Between 1.0 and 2.5 seconds, mimicking a round trip to a model.
	r.delay(ctx, time.Duration(1000+r.intn(1500))*time.Millisecond)
	choices := Responses(req.Message)
	return choices[r.intn(len(choices))], nil
}

func (r *Responder) intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// Responses returns the candidate replies for a message. Buckets are checked
// in order; the first match wins. Exported so callers can membership-test a
// randomized reply.
func Responses(message string) []string {
	msg := strings.ToLower(message)

	if containsAny(msg, "hello", "hi", "hey", "greet") {
		return greetingResponses
	}

	if strings.Contains(msg, "what is") || strings.Contains(msg, "tell me about") {
		switch {
		case containsAny(msg, "walk", "run"):
			return walkingResponses
		case containsAny(msg, "sky", "air"):
			return skyResponses
		case strings.Contains(msg, "camel"):
			return camelResponses
		case strings.Contains(msg, "pillow"):
			return pillowResponses
		case containsAny(msg, "land", "earth", "ground"):
			return landResponses
		case containsAny(msg, "bicycle", "bike"):
			return bicycleResponses
		case containsAny(msg, "tree", "plant"):
			return treeResponses
		case containsAny(msg, "car", "vehicle"):
			return carResponses
		case containsAny(msg, "sun", "sunlight"):
			return sunResponses
		default:
			return archiveResponses
		}
	}

	if containsAny(msg, "amphitopia", "colony", "underwater", "water", "ocean") {
		return colonyResponses
	}
	if containsAny(msg, "ancestor", "grandparent", "old", "past", "before") {
		return ancestorResponses
	}

	return fallbackResponses
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

var greetingResponses = []string{
	"Welcome, denizen of Amphitopia. I am here to bridge the knowledge between land and water. What would you like to know about the surface world?",
	"Greetings. On land, people used to greet each other while standing still on solid ground, without needing bubble helms or oxygen credits. Have you ever wondered what that felt like?",
	"Hello. Your ancestors used this word in open air, not filtered through water-sealed chambers. What aspect of their world puzzles you most?",
}

var walkingResponses = []string{
	"Walking or running is a curious ritual of friction and breath. People used to throw themselves forward using only their legs, pounding soft ground until their lungs burned. Can you imagine propelling yourself without water resistance?",
	"Running is like jet-slipper movement but powered by leg muscles against ground that doesn't float. Have you ever tried to move quickly through the dome corridors without your propulsion gear?",
}

var skyResponses = []string{
	"The sky is a protective layer that is very far away, and may change colors depending on the universe's mood. Think of it as the dome above Amphitopia, but natural, infinite, and constantly shifting.",
	"Sky... imagine the space between our dome and the ocean surface, but instead of water, there's nothing but air - breathable, vast, and filled with clouds that drift like jellyfish.",
}

var camelResponses = []string{
	"Camels are creatures walking on four legs. They are a living water tank wrapped in carpet, powered by spite and sand. They thrived in the deserts your grandparents fled from.",
	"A camel is like an organic cargo pod with legs, designed to survive the surface heat that drove us underwater. They stored water like our oxygen recyclers store breath.",
}

var pillowResponses = []string{
	"A pillow is like a friendly piece of surface-world coral that forgot to be hard. Surface dwellers place it under their heads when they sleep because their necks are weak from not swimming all day.",
	"Imagine the soft padding inside your bubble helm, but larger and used during sleep. Land dwellers needed this because they couldn't float while resting.",
}

var landResponses = []string{
	"Land is a place, a space, where humans lived. Above the land, humans walked, ran, and travelled far. Some settled, building structures that scraped the skies, and some burrowed deep inside the Earth.",
	"Land is solid water - it doesn't flow or move. Your ancestors stood on it without floating, built upon it without anchoring to the seafloor. Quite different from our pressurized existence.",
}

var bicycleResponses = []string{
	"A bicycle is a manual propulsion device with two wheels. Imagine your jet slippers, but you power it with your legs by pushing pedals in circles. No oxygen credits needed, just leg strength.",
	"Bicycles are like sea strider pods, but human-powered and requiring perfect balance since there's no water to float in. Two wheels, circular pedaling motion, powered entirely by leg muscles.",
}

var treeResponses = []string{
	"Trees are like the kelp forests you see outside the dome, but they lived in air instead of water. Tall, stationary organisms that produced oxygen and provided shelter.",
	"Plants on land were similar to the algae in our oxygen recyclers, but they grew in soil - solid, nutrient-rich ground. Trees were the giants among them, some as tall as our colony buildings.",
}

var carResponses = []string{
	"Cars are surface-world versions of sea strider pods. Metal boxes with wheels that rolled on hard surfaces, powered by combustion engines. Your ancestors sat inside and traveled without swimming.",
	"A car is like a bullet pod, but it traveled on land using wheels. No water resistance, just rolling friction. They burned ancient plant matter for fuel - quite different from our electric systems.",
}

var sunResponses = []string{
	"The sun is a massive sphere of burning gas very far away. It provided warmth and light to the surface world, like our dome lights but natural and impossibly brighter. Your grandparents could feel it on their skin.",
	"Sunlight is what that faint grey glow above the ocean surface is - but on land, it was direct, warm, and sometimes too intense. It powered plant life and warmed the entire surface world before the heat became unbearable.",
}

var archiveResponses = []string{
	"I have knowledge of many land concepts in my archive. Please specify what you would like to understand, and I will translate it to your underwater context.",
	"The archive holds countless definitions from the surface world. Which concept would you like me to explore for you?",
}

var colonyResponses = []string{
	"Yes, we exist in Amphitopia, beneath the Arabian Sea. Your grandparents made this journey when the surface became uninhabitable. I preserve their memories of what was left behind.",
	"The colony exists because the land grew too hot. Your ancestors chose the ocean's cool depths over the burning surface. I am here to ensure you remember what they knew.",
	"Amphitopia is humanity's adaptation to Earth's fever. Down here, the ocean cools us. Up there, the sun would burn us. I bridge both worlds through knowledge.",
}

var ancestorResponses = []string{
	"Your grandparents walked on land, breathed open air, and felt direct sunlight. I preserve these experiences so younger generations like you can understand what was lost and gained.",
	"The past lives in my archive. Every object, every concept from land life is stored here, waiting to teach those who only know bubble helms and jet slippers.",
	"Before the migration, life was different. Gravity pulled harder, breathing was free, and the horizon stretched endlessly. I can help you understand that world.",
}

var fallbackResponses = []string{
	"I sense your curiosity may have drifted from the world of Amphitopia and our ancestors' surface life. What aspect of that transition would you like to understand better?",
	"The archive holds countless definitions from the surface world. Which land concept would you like me to explore for you?",
	"I am here to help you understand the surface world your ancestors knew. What would you like to know?",
}
