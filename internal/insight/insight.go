// ABOUTME: AI training-insight generation from workload and recovery analytics.
// ABOUTME: Model failures degrade to a fixed fallback message.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harperreed/ironlog/internal/analytics"
	"github.com/harperreed/ironlog/internal/logging"
	"github.com/harperreed/ironlog/internal/models"
)

// FallbackMessage is shown when the model cannot be reached.
const FallbackMessage = "Analysis error. Please verify your connection and API configuration."

// EmptyMessage is shown when the model returns no text.
const EmptyMessage = "Unable to synthesize analysis."

// Model generates text for a prompt.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Context is the data an insight prompt is built from.
type Context struct {
	Profile      models.UserProfile
	Workload     analytics.Workload
	MuscleLoads  map[string]float64
	Recovery     analytics.Recovery
	RecentPain   []models.PainLevels
	SessionCount int
}

// Source supplies the state needed to build a Context.
type Source interface {
	Profile() models.UserProfile
	History() []models.WorkoutSession
	RecoveryLogs() []models.RecoveryLog
	Lookup(id string) (models.Exercise, bool)
}

// BuildContext gathers analytics from src at now.
func BuildContext(src Source, now time.Time) Context {
	history := src.History()
	logs := src.RecoveryLogs()
	c := Context{
		Profile:      src.Profile(),
		Workload:     analytics.WorkloadRatio(history, now),
		MuscleLoads:  analytics.MuscleGroupVolume(history, src, now),
		Recovery:     analytics.RecoveryIndex(logs),
		SessionCount: len(history),
	}
	for _, l := range analytics.RecentRecoveryLogs(logs, 3) {
		c.RecentPain = append(c.RecentPain, l.Pain)
	}
	return c
}

// Prompt renders the coaching prompt.
func (c Context) Prompt() string {
	loads, _ := json.Marshal(c.MuscleLoads)
	pain, _ := json.Marshal(c.RecentPain)
	if c.RecentPain == nil {
		pain = []byte("[]")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Act as a sports scientist and high-level training coach. Analyze the following data for %s", c.Profile.Name)
	fmt.Fprintf(&b, " (%dyo, %s, %s", c.Profile.Age, c.Profile.CurrentWeight, c.Profile.Diet)
	if len(c.Profile.Supplements) > 0 {
		fmt.Fprintf(&b, ", %s", strings.Join(c.Profile.Supplements, ", "))
	}
	b.WriteString(").\n\n")
	b.WriteString("TRAINING PHILOSOPHY: All sets to absolute failure (0 RIR), high intensity, long rest.\n\n")
	b.WriteString("CALCULATED METRICS (LAST 7 DAYS):\n")
	fmt.Fprintf(&b, "- Acute:Chronic Workload Ratio (ACWR): %.2f (Goal: 0.8 - 1.3)\n", c.Workload.Ratio)
	fmt.Fprintf(&b, "- Total Weekly Volume: %gkg\n", c.Workload.Acute)
	fmt.Fprintf(&b, "- Muscle Group Loads: %s\n\n", loads)
	b.WriteString("RECOVERY MARKERS:\n")
	fmt.Fprintf(&b, "- Avg Sleep: %.1fh\n", c.Recovery.AvgSleep)
	fmt.Fprintf(&b, "- Recovery Score: %.0f%%\n", c.Recovery.Score*100)
	fmt.Fprintf(&b, "- Recent Pain Logs: %s\n\n", pain)
	b.WriteString("Provide a point-by-point training analysis.\n")
	b.WriteString("1. Evaluate if the current ACWR puts them at injury risk or in a \"Sweet Spot\".\n")
	b.WriteString("2. Identify localized muscle fatigue spikes based on the volume logs.\n")
	b.WriteString("3. Give a specific, prescriptive recommendation for any joint with recent pain, given the 0 RIR intensity philosophy.\n\n")
	b.WriteString("Keep it direct, evidence-based, and scientific. Use Markdown.\n")
	return b.String()
}

// Generator produces insights with a Model.
type Generator struct {
	model  Model
	logger *log.Logger
}

// NewGenerator creates a Generator. A nil logger discards output.
func NewGenerator(m Model, logger *log.Logger) *Generator {
	return &Generator{model: m, logger: logging.OrDiscard(logger)}
}

// Generate returns the model's analysis, or a fallback message. It never
// returns an error; ok reports whether the text came from the model.
func (g *Generator) Generate(ctx context.Context, c Context) (text string, ok bool) {
	if g.model == nil {
		return FallbackMessage, false
	}
	out, err := g.model.Generate(ctx, c.Prompt())
	if err != nil {
		g.logger.Warn("insight generation failed", "err", err)
		return FallbackMessage, false
	}
	if strings.TrimSpace(out) == "" {
		return EmptyMessage, false
	}
	return out, true
}
