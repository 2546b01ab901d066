// Command simulate_game drives a full session with an LLM standing in
// for the player, useful for exercising the engine end to end.
package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/storywalk/internal/config"
	"github.com/tatianab/storywalk/internal/engine"
	"github.com/tatianab/storywalk/internal/models"
	"github.com/tatianab/storywalk/internal/vars"
	"github.com/tatianab/storywalk/internal/world"
)

const maxTurns = 10

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	def, err := models.LoadWorld(cfg.WorldPath)
	if err != nil {
		log.Fatalf("Failed to load world: %v", err)
	}
	store, err := vars.Parse(def.Variables)
	if err != nil {
		log.Fatalf("Failed to parse variables: %v", err)
	}
	graph, err := world.FromDefinition(def)
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}

	eng, err := engine.NewEngine(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer eng.Close()

	session, err := world.NewSession(ctx, graph, store, eng, def.VisitOrder)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	playerClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer playerClient.Close()
	playerModel := playerClient.GenerativeModel("gemini-2.5-flash")

	for turn := 1; turn <= maxTurns; turn++ {
		fmt.Printf("--- Turn %d ---\n", turn)
		room := session.CurrentRoom()
		event := session.CurrentEvent()
		fmt.Printf("Room: %s (canon route: %v)\n", room.Name, session.OnCanon())
		fmt.Printf("Event (canon=%v): %s\n", event.Canon, event.Text)

		choice := getPlayerChoice(ctx, playerModel, session)
		fmt.Printf("Player chose: %s\n", choice)

		if dir, err := models.ParseDirection(choice); err == nil {
			moved, err := session.Move(ctx, dir)
			if err != nil {
				fmt.Printf("Move failed: %v\n", err)
				continue
			}
			if !moved {
				fmt.Println("That direction is closed.")
			}
			continue
		}

		var taken bool
		for _, action := range session.Actions() {
			if strings.EqualFold(action.Description, choice) {
				if err := session.TakeAction(ctx, action); err != nil {
					fmt.Printf("Action failed: %v\n", err)
				}
				taken = true
				break
			}
		}
		if !taken {
			fmt.Println("Choice matched nothing; skipping turn.")
		}
		fmt.Printf("Variables: %v\n\n", session.Variables().Lines())
	}
}

func getPlayerChoice(ctx context.Context, model *genai.GenerativeModel, session *world.Session) string {
	room := session.CurrentRoom()

	exits := ""
	for _, dir := range models.Directions {
		if room.Connections[dir] != "" {
			exits += string(dir) + " "
		}
	}
	actionList := ""
	for _, action := range session.Actions() {
		actionList += "- " + action.Description + "\n"
	}

	prompt := fmt.Sprintf(`You are playing a text adventure.
Current room: %s
%s
Current event: %s
Open directions: %s
Available actions:
%s
Visited so far: %v

Reply with EXACTLY one open direction (e.g. "north") or one action description verbatim. Nothing else.`,
		room.Name,
		room.Description,
		session.CurrentEvent().Text,
		exits,
		actionList,
		session.VisitedRooms(),
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "north"
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "north"
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
}
