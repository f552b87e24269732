package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
)

// Assistant intents.
const (
	IntentGreetings       = "greetings"
	IntentHowAreYou       = "how_are_you"
	IntentThanks          = "thanks"
	IntentAddGame         = "add_game"
	IntentImportGames     = "import_games"
	IntentAddOfficial     = "add_official"
	IntentAssignOfficial  = "assign_official"
	IntentViewAssignments = "view_assignments"
	IntentAddUser         = "add_user"
	IntentReports         = "reports"
	IntentNavigation      = "navigation"
	IntentTroubleshooting = "troubleshooting"
	IntentGeneral         = "general"
)

type intentRule struct {
	intent   string
	patterns []*regexp.Regexp
}

func rule(intent string, patterns ...string) intentRule {
	r := intentRule{intent: intent}
	for _, p := range patterns {
		r.patterns = append(r.patterns, regexp.MustCompile(`(?i)`+p))
	}
	return r
}

// intentRules are tried in order; small talk first, then how-to topics.
var intentRules = []intentRule{
	rule(IntentGreetings,
		`\b(hi|hello|hey|good\s+(morning|afternoon|evening)|greetings|what's\s+up|howdy)\b`),
	rule(IntentHowAreYou,
		`\bhow\s+(are\s+you|'re\s+you|are\s+ya)\b`,
		`\bhow\s+are\s+things\b`,
		`\bhow\s+(is\s+it\s+going|'s\s+it\s+going)\b`),
	rule(IntentThanks,
		`\b(thank\s+you|thanks|great\s+job|awesome|helpful|good\s+work)\b`),
	rule(IntentAddGame,
		`\b(add|create|new|make)\s+.*\b(game|match|event)\b`,
		`\bhow\s+(do\s+i|to)\s+(add|create|schedule)\s+.*\b(game|match)\b`),
	rule(IntentImportGames,
		`\b(import|upload|csv)\s+.*\bgames?\b`,
		`\bcsv\s+(import|upload|file)\b`,
		`\bbulk\s+(import|add|upload)\b`),
	rule(IntentAddOfficial,
		`\b(add|create|new)\s+.*\b(official|referee|umpire)\b`),
	rule(IntentAssignOfficial,
		`\b(assign|assignment)\s+.*\b(official|referee)\b`,
		`\bhow\s+(do\s+i|to)\s+assign\b`,
		`\b(official|referee)\s+.*\b(assign|assignment)\b`),
	rule(IntentViewAssignments,
		`\b(view|see|check)\s+.*\bassignments?\b`,
		`\bassignment\s+(status|list|overview)\b`),
	rule(IntentAddUser,
		`\b(add|create|new)\s+.*\buser\b`),
	rule(IntentReports,
		`\b(report|reports|analytics|export)\b`),
	rule(IntentNavigation,
		`\bhow\s+(do\s+i|to)\s+(navigate|use|get\s+around)\b`,
		`\b(where\s+is|how\s+to\s+find)\b`,
		`\bbasics\b`),
	rule(IntentTroubleshooting,
		`\b(problem|issue|error|trouble|help|stuck)\b`,
		`\b(not\s+working|broken|can't|cannot)\b`),
}

// DetectIntent returns the first intent whose pattern matches message.
func DetectIntent(message string) string {
	for _, r := range intentRules {
		for _, p := range r.patterns {
			if p.MatchString(message) {
				return r.intent
			}
		}
	}
	return IntentGeneral
}

// helpTopic a step-by-step guide.
type helpTopic struct {
	title string
	steps []string
	tips  []string
}

func (t helpTopic) String() string {
	var b strings.Builder
	b.WriteString(t.title + "\n\nSteps:\n")
	b.WriteString(strings.Join(t.steps, "\n"))
	if len(t.tips) > 0 {
		b.WriteString("\n\nTips:\n- ")
		b.WriteString(strings.Join(t.tips, "\n- "))
	}
	return b.String()
}

var helpTopics = map[string]helpTopic{
	IntentAddGame: {
		title: "How to add a single game",
		steps: []string{
			"1. Open the Games tab.",
			"2. Click Add Game.",
			"3. Fill in date, time, home and away team, sport, league, level, location and officials needed.",
			"4. Save. The fee is filled in from the league fee schedule unless you enter one.",
		},
		tips: []string{
			"The league decides which assigners can see the game.",
			"Dates are YYYY-MM-DD and times are 24-hour HH:MM.",
		},
	},
	IntentImportGames: {
		title: "How to import games from CSV",
		steps: []string{
			"1. Open the Games tab and download the CSV template.",
			"2. Fill in one game per row: date, time, home_team, away_team and sport are required.",
			"3. Upload the file with Import CSV.",
			"4. Review the per-row errors and warnings in the result.",
		},
		tips: []string{
			"officials_needed must be between 1 and 10.",
			"Unknown sports are imported with a warning.",
		},
	},
	IntentAddOfficial: {
		title: "How to add an official",
		steps: []string{
			"1. Open the Officials tab.",
			"2. Click Add Official.",
			"3. Enter username, password, name, contact details, sports and certifications.",
			"4. Save. The official can sign in right away.",
		},
	},
	IntentAssignOfficial: {
		title: "How to assign officials to games",
		steps: []string{
			"1. Open the Assignments tab or click Assign on a game.",
			"2. Pick the game and the official.",
			"3. Choose a position and, if needed, a fee override.",
			"4. Confirm. The official sees the assignment as pending and can accept or decline.",
		},
		tips: []string{
			"An official cannot hold two games at the same date and time unless the games are linked.",
			"Bulk assignment reports each rejected pair and keeps the rest.",
		},
	},
	IntentViewAssignments: {
		title: "How to view assignments",
		steps: []string{
			"1. Open the Assignments tab.",
			"2. Filter by game, official, status or date range.",
			"3. Statuses are pending, assigned, accepted and declined.",
		},
	},
	IntentAddUser: {
		title: "How to add a user (admin only)",
		steps: []string{
			"1. Open the Users tab.",
			"2. Click Add User and enter username, password, name, email and role.",
			"3. Roles: superadmin (everything), admin (users and scheduling in their leagues), assigner (games and assignments in their leagues), official (own assignments).",
			"4. Add the user to leagues so they can see them.",
		},
	},
	IntentReports: {
		title: "How to export data",
		steps: []string{
			"1. Games: select games and export as CSV, or download the Excel workbook.",
			"2. Assignments: download the Excel workbook, filtered like the list.",
		},
	},
	IntentNavigation: {
		title: "Getting around",
		steps: []string{
			"Dashboard: upcoming games, assignments and active officials.",
			"Games: add, import, link and export games.",
			"Officials: official profiles.",
			"Assignments: put officials on games and track responses.",
			"Leagues: leagues, fee schedules and billing.",
			"Profile: your account and calendar link.",
		},
	},
}

var troubleshootingTips = map[string][]string{
	"login": {
		"Check the spelling of username and password.",
		"Make sure Caps Lock is off.",
		"Ask an administrator if your account was deactivated.",
	},
	"assignment": {
		"The official may already be on another game at the same date and time.",
		"The official may be inactive.",
		"The game may belong to a league you are not a member of.",
	},
	"csv": {
		"Use the latest template.",
		"Dates must be YYYY-MM-DD and times HH:MM.",
		"Remove empty rows and check required columns.",
	},
}

// AssistantService answers help questions from a static knowledge base.
type AssistantService interface {
	Chat(ctx context.Context, id model.Identity, req *dto.ChatRequest) (*dto.ChatResponse, error)
	Help(ctx context.Context, id model.Identity, topic string) (*dto.ChatResponse, error)
}

type assistantService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewAssistantService creates an AssistantService.
func NewAssistantService(repo *repository.Repository, logger *zap.Logger) AssistantService {
	return &assistantService{repo: repo, logger: logger, now: time.Now}
}

func (s *assistantService) Chat(ctx context.Context, id model.Identity, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	intent := DetectIntent(message)
	resp := s.reply(id.Role, intent, message)

	excerpt := message
	if r := []rune(excerpt); len(r) > 50 {
		excerpt = string(r[:50]) + "..."
	}
	if err := recordActivity(ctx, s.repo, id.UserID, ActionChat, "assistant", "",
		"Asked the assistant: \""+excerpt+"\"", map[string]interface{}{"intent": intent}); err != nil {
		// the answer does not depend on the log
		s.logger.Warn("record assistant chat failed", zap.String("user_id", id.UserID), zap.Error(err))
	}
	return resp, nil
}

func (s *assistantService) Help(_ context.Context, id model.Identity, topic string) (*dto.ChatResponse, error) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == IntentTroubleshooting || topic == IntentGeneral {
		return s.reply(id.Role, topic, ""), nil
	}
	if _, ok := helpTopics[topic]; !ok {
		return nil, ErrHelpTopicNotFound
	}
	return s.reply(id.Role, topic, ""), nil
}

func (s *assistantService) reply(role model.Role, intent, message string) *dto.ChatResponse {
	resp := &dto.ChatResponse{Intent: intent}
	switch intent {
	case IntentGreetings:
		resp.Reply = s.greeting() + " What would you like to do?"
		resp.Suggestions = suggestionsFor(role)
	case IntentHowAreYou:
		resp.Reply = "Doing well, thanks for asking. How is your scheduling going?"
		resp.Suggestions = suggestionsFor(role)
	case IntentThanks:
		resp.Reply = "Glad I could help. Anything else?"
	case IntentAddUser:
		if !role.Can(model.CapManageUsers) {
			resp.Reply = "Adding users requires admin privileges. Ask an administrator to create the account."
			return resp
		}
		resp.Reply = helpTopics[intent].String()
	case IntentTroubleshooting:
		resp.Reply = troubleshoot(message)
	case IntentGeneral:
		resp.Reply = generalHelp(role)
		resp.Suggestions = suggestionsFor(role)
	default:
		resp.Reply = helpTopics[intent].String()
	}
	return resp
}

func (s *assistantService) greeting() string {
	switch h := s.now().Hour(); {
	case h >= 5 && h < 12:
		return "Good morning!"
	case h >= 12 && h < 17:
		return "Good afternoon!"
	default:
		return "Good evening!"
	}
}

func troubleshoot(message string) string {
	lower := strings.ToLower(message)
	var keys []string
	switch {
	case strings.Contains(lower, "login") || strings.Contains(lower, "password"):
		keys = []string{"login"}
	case strings.Contains(lower, "assign") || strings.Contains(lower, "conflict"):
		keys = []string{"assignment"}
	case strings.Contains(lower, "csv") || strings.Contains(lower, "import"):
		keys = []string{"csv"}
	default:
		keys = []string{"login", "assignment", "csv"}
	}

	var b strings.Builder
	b.WriteString("Common fixes:")
	for _, k := range keys {
		b.WriteString("\n\n" + strings.ToUpper(k[:1]) + k[1:] + ":\n- ")
		b.WriteString(strings.Join(troubleshootingTips[k], "\n- "))
	}
	return b.String()
}

func generalHelp(role model.Role) string {
	if role == model.RoleOfficial {
		return "As an official you can see your games, accept or decline assignments, " +
			"update your profile and subscribe to your calendar link."
	}
	return "I can walk you through games (adding, CSV import, linking), officials, " +
		"assignments, leagues and fees, users and exports."
}

func suggestionsFor(role model.Role) []string {
	if role == model.RoleOfficial {
		return []string{"How do I view my assignments?", "How do I get my calendar link?"}
	}
	return []string{"How do I add a game?", "How do I import games from CSV?", "How do I assign an official?"}
}
