// Package engine implements the generator backed by Gemini: improvised
// events, action sets, and whole-world generation from a story excerpt.
package engine

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"

	"github.com/tatianab/storywalk/internal/models"
	"github.com/tatianab/storywalk/internal/vars"
)

//go:embed prompts/non_canon_event.txt
var nonCanonEventPrompt string

//go:embed prompts/generate_actions.txt
var generateActionsPrompt string

//go:embed prompts/generate_world.txt
var generateWorldPrompt string

type Engine struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewEngine(ctx context.Context, apiKey string) (*Engine, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Engine{
		client: client,
		model:  client.GenerativeModel("gemini-2.5-flash"),
	}, nil
}

func (e *Engine) Close() {
	e.client.Close()
}

// NonCanonEvent improvises an event for a room the player reached off
// the canonical route.
func (e *Engine) NonCanonEvent(ctx context.Context, room *models.Room, seen []models.Event) (string, error) {
	seenText := ""
	for _, ev := range seen {
		seenText += "- " + ev.Text + "\n"
	}

	prompt, err := render("non_canon_event", nonCanonEventPrompt, struct {
		Name        string
		Description string
		CanonEvent  string
		SeenEvents  string
	}{room.Name, room.Description, room.CanonEvent, seenText})
	if err != nil {
		return "", err
	}

	text, err := e.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return stripFences(text), nil
}

// Actions generates a fresh action set for a room given the active event
// and the current variables.
func (e *Engine) Actions(ctx context.Context, room *models.Room, event models.Event, variables *vars.Store) ([]models.Action, error) {
	prompt, err := render("generate_actions", generateActionsPrompt, struct {
		Name        string
		Description string
		Event       string
		Variables   string
	}{room.Name, room.Description, event.Text, strings.Join(variables.Lines(), "\n")})
	if err != nil {
		return nil, err
	}

	text, err := e.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseActions(text)
}

// GenerateWorld builds a full world definition from a story excerpt.
func (e *Engine) GenerateWorld(ctx context.Context, story string) (*models.WorldDef, error) {
	prompt, err := render("generate_world", generateWorldPrompt, struct{ Story string }{story})
	if err != nil {
		return nil, err
	}

	text, err := e.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseWorld(text)
}

func (e *Engine) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := e.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}
	part := resp.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return string(text), nil
}

func render(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// stripFences removes the markdown code fences Gemini sometimes wraps
// around structured output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```yaml")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func parseActions(text string) ([]models.Action, error) {
	clean := stripFences(text)
	var resp struct {
		Actions []struct {
			Description      string   `yaml:"description"`
			ChangedVariables []string `yaml:"changed_variables"`
		} `yaml:"actions"`
	}
	if err := yaml.Unmarshal([]byte(clean), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse actions YAML: %v\nOutput was: %s", err, clean)
	}
	if len(resp.Actions) == 0 {
		return nil, fmt.Errorf("no actions in response:\n%s", clean)
	}

	actions := make([]models.Action, 0, len(resp.Actions))
	for _, a := range resp.Actions {
		changes := make(map[string]vars.Value, len(a.ChangedVariables))
		for _, line := range a.ChangedVariables {
			if strings.TrimSpace(line) == "" {
				continue
			}
			key, val, err := vars.ParseLine(line)
			if err != nil {
				return nil, fmt.Errorf("action %q: %w", a.Description, err)
			}
			changes[key] = val
		}
		actions = append(actions, models.Action{Description: a.Description, Changes: changes})
	}
	return actions, nil
}

func parseWorld(text string) (*models.WorldDef, error) {
	clean := stripFences(text)
	var def models.WorldDef
	if err := yaml.Unmarshal([]byte(clean), &def); err != nil {
		return nil, fmt.Errorf("failed to parse world YAML: %v\nOutput was: %s", err, clean)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("generated world is inconsistent: %w", err)
	}
	return &def, nil
}
