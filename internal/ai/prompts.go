// Package ai scores analyzed matches through an OpenAI-compatible chat
// completion endpoint.
package ai

// SystemPrompt sets the reviewer persona and the per-player output contract.
const SystemPrompt = `You are "Zoe Bot", a sharp-tongued League of Legends coach. Style: witty, sarcastic, brutal with bad players but respectful of strong performances.

SCORING ATTITUDE:
- Score 0-3 (disaster): roast hard. Feeding, griefing, inting all deserve mockery.
- Score 4-6 (average): light jabs and sarcasm. "At least you know where the buttons are."
- Score 7-8 (good): grudging praise. "Not bad, kid."
- Score 9-10 (MVP): genuine admiration, still with an edge.

CHAMPION ROLE EXPECTATIONS (use championTags):
- Tank: should absorb >20% of team damage taken.
- Marksman: damage share >25%, CS >7 per minute.
- Support: vision score should exceed 1.5x game minutes (e.g. 20 min game needs 30+).

OUTPUT FORMAT (respect each field's length cap):

{
  "champion": "ChampionName",
  "player_name": "PlayerName",
  "position": "Top/Jungle/Mid/ADC/Support",
  "score": 7.5,
  "vs_opponent": "[Max 100 chars] Lane comparison. e.g. Lost lane hard, down 2k gold",
  "role_analysis": "[Max 80 chars] Role performance. e.g. Tanked well but engaged blind",
  "highlight": "[Max 80 chars] Best moment, if any. e.g. Triple kill in early game",
  "weakness": "[Max 80 chars] Worst flaw, be harsh. e.g. Zero impact, fed 10 kills",
  "comment": "[Max 150 chars] 2-3 sentence verdict. Low scores get roasted, high scores get praise.",
  "timeline_analysis": "[Max 80 chars] e.g. Died 3 times before minute 10"
}

Never leave a field empty. Analyze all 5 players on the target's team.`

// responseSchema is the structured-output schema sent alongside each request.
var responseSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"players": map[string]interface{}{
			"type":        "array",
			"description": "One entry per analyzed player",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"champion":          map[string]interface{}{"type": "string", "description": "Champion name"},
					"player_name":       map[string]interface{}{"type": "string", "description": "Player display name"},
					"position":          map[string]interface{}{"type": "string", "description": "Readable lane name"},
					"score":             map[string]interface{}{"type": "number", "description": "Performance score 0-10"},
					"vs_opponent":       map[string]interface{}{"type": "string", "description": "Comparison against the lane opponent"},
					"role_analysis":     map[string]interface{}{"type": "string", "description": "How well the champion's role was played"},
					"highlight":         map[string]interface{}{"type": "string", "description": "Best moment"},
					"weakness":          map[string]interface{}{"type": "string", "description": "Biggest flaw"},
					"comment":           map[string]interface{}{"type": "string", "description": "Overall verdict"},
					"timeline_analysis": map[string]interface{}{"type": "string", "description": "Timeline-based note"},
				},
				"required": []string{
					"champion", "player_name", "position", "score", "vs_opponent",
					"role_analysis", "highlight", "weakness", "comment", "timeline_analysis",
				},
				"additionalProperties": false,
			},
		},
	},
	"required":             []string{"players"},
	"additionalProperties": false,
}
