package services

import (
	"context"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/utils/clock"
)

const (
	svcLearner    = "Learner-Svc"
	svcContentGen = "Content-Gen"
	svcGrading    = "Grading-Svc"
	svcAuthEdge   = "Auth-Edge"
)

// GatewayService orchestrates calls between the API surface and the
// collaborator. It keeps per-service health records and simulates the edge
// latency of each backing service through the injected clock, so tests run
// without real waits.
type GatewayService struct {
	mu       sync.RWMutex
	collab   Collaborator
	clock    clock.Clock
	health   []model.ServiceStatus
	baseline map[string]int

	// rand.Rand is not safe for concurrent use; rngMu guards it independently
	// of mu so reads holding RLock can still draw jitter
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewGatewayService creates a gateway with the default health baseline
func NewGatewayService(collab Collaborator, clk clock.Clock) *GatewayService {
	return &GatewayService{
		collab: collab,
		clock:  clk,
		health: []model.ServiceStatus{
			{Name: svcLearner, Status: model.HealthOnline, Latency: 45},
			{Name: svcContentGen, Status: model.HealthOnline, Latency: 120},
			{Name: svcGrading, Status: model.HealthOnline, Latency: 85},
			{Name: svcAuthEdge, Status: model.HealthOnline, Latency: 12},
		},
		baseline: map[string]int{
			svcLearner:    45,
			svcContentGen: 120,
			svcGrading:    85,
			svcAuthEdge:   12,
		},
		rng: rand.New(rand.NewSource(clk.Now().UnixNano())),
	}
}

// randN draws a uniform value in [0,n) from the shared RNG
func (g *GatewayService) randN(n int) int {
	g.rngMu.Lock()
	defer g.rngMu.Unlock()
	return g.rng.Intn(n)
}

// Health returns a snapshot of the service health records
func (g *GatewayService) Health() []model.ServiceStatus {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]model.ServiceStatus, len(g.health))
	copy(out, g.health)
	return out
}

// RefreshHealth jitters the reported latencies around their baseline.
// Scheduled periodically from the cron manager.
func (g *GatewayService) RefreshHealth() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.health {
		jitter := g.randN(21) - 10 // +-10ms
		latency := g.baseline[g.health[i].Name] + jitter
		if latency < 5 {
			latency = 5
		}
		g.health[i].Latency = latency
		if latency > 200 {
			g.health[i].Status = model.HealthDegraded
		} else {
			g.health[i].Status = model.HealthOnline
		}
	}
}

// FetchPersonalizedExercise requests one generated exercise for a course
func (g *GatewayService) FetchPersonalizedExercise(ctx context.Context, course *model.Course, lang model.Language) (*model.Exercise, error) {
	elapsed := g.simulateLatency(ctx, svcContentGen)
	log.Printf("[edge] exercise fetch dispatched after %dms", elapsed.Milliseconds())

	return g.collab.GenerateExercise(ctx, course.TitleIn(lang), course.DescriptionIn(lang), lang)
}

// SubmitGrading sends an answer for evaluation and stamps latency and size
// metadata onto the result
func (g *GatewayService) SubmitGrading(ctx context.Context, exercise *model.Exercise, answer string, lang model.Language) (*model.GradeResult, error) {
	start := g.clock.Now()
	g.simulateLatency(ctx, svcGrading)

	result, err := g.collab.EvaluateExercise(ctx, exercise, answer, lang)
	if err != nil {
		return nil, err
	}

	result.Metadata = &model.GradeMetadata{
		ProcessingTime: g.clock.Now().Sub(start).Milliseconds(),
		Tokens:         int(math.Ceil(float64(len(answer)) * 1.5)),
	}
	return result, nil
}

// Translate forwards a translation request to the collaborator
func (g *GatewayService) Translate(ctx context.Context, text string, target model.Language) (string, error) {
	return g.collab.Translate(ctx, text, target)
}

// simulateLatency sleeps for the service's reported latency plus jitter and
// returns the simulated delay
func (g *GatewayService) simulateLatency(ctx context.Context, name string) time.Duration {
	g.mu.RLock()
	base := 100
	for _, svc := range g.health {
		if svc.Name == name {
			base = svc.Latency
			break
		}
	}
	g.mu.RUnlock()
	jitter := g.randN(50)

	delay := time.Duration(base+jitter) * time.Millisecond
	g.clock.Sleep(ctx, delay)
	return delay
}
