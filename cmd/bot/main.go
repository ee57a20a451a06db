package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/korjavin/introscheduler/pkg/assistant"
	"github.com/korjavin/introscheduler/pkg/calendarsource"
	"github.com/korjavin/introscheduler/pkg/config"
	"github.com/korjavin/introscheduler/pkg/directory"
	"github.com/korjavin/introscheduler/pkg/invite"
	"github.com/korjavin/introscheduler/pkg/logger"
	"github.com/korjavin/introscheduler/pkg/messages"
	"github.com/korjavin/introscheduler/pkg/models"
	"github.com/korjavin/introscheduler/pkg/openai"
	"github.com/korjavin/introscheduler/pkg/state"
	"github.com/korjavin/introscheduler/pkg/storage"
	"github.com/korjavin/introscheduler/pkg/telegram"
)

var meetingTypeByCode = map[string]models.MeetingType{
	"hm":   models.MeetingIntroHiringManager,
	"rm":   models.MeetingIntroReportingManager,
	"hrbp": models.MeetingIntroHRBP,
}

func main() {
	// Initialize logger
	log := logger.Global
	log.Info("Starting onboarding scheduling bot...")

	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	// Initialize storage
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		log.Error("Failed to initialize storage: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	// Start BadgerDB garbage collection
	store.StartGCRoutine(10 * time.Minute)

	// Initialize OpenAI client
	openaiClient := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIAPIBase, cfg.OpenAIModel)

	// Initialize services
	dir := directory.New()
	calendars := calendarsource.New(store, dir)
	invites := invite.New(store, dir)
	agent := assistant.New(dir, calendars, invites, cfg)
	messageService := messages.New(openaiClient)
	stateManager := state.New()

	// Seed synthetic manager calendars for the scheduling window
	if err := calendars.EnsureSeeded(time.Now().UTC().Truncate(24*time.Hour), cfg.CalendarSeedDays); err != nil {
		log.Error("Failed to seed calendars: %v", err)
		os.Exit(1)
	}

	// Initialize Telegram bot
	bot, err := telegram.New(cfg.BotToken)
	if err != nil {
		log.Error("Failed to initialize Telegram bot: %v", err)
		os.Exit(1)
	}

	// showProposals runs the engine and presents the ranked slots
	showProposals := func(chatID int64, candidateID string, meetingType models.MeetingType, durationMinutes int, deadline time.Time) {
		proposal, err := agent.Propose(candidateID, meetingType, durationMinutes, deadline)
		if err != nil {
			log.Error("Failed to propose slots: %v", err)
			stateManager.Clear(chatID)
			bot.SendMessage(chatID, messageService.SchedulingFailureMessage(err))
			return
		}

		stateManager.Update(chatID, state.Session{
			State:       state.StateChoosingProposal,
			CandidateID: candidateID,
			MeetingType: meetingType,
			Proposals:   proposal.Slots,
		})

		text := messages.FormatProposals(proposal.Slots, proposal.Participants, meetingType)
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(proposal.Slots))
		for i := range proposal.Slots {
			label := fmt.Sprintf("Option %d", i+1)
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("slot:%d", i)),
			))
		}
		bot.SendMessageWithKeyboard(chatID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
	}

	// confirmProposal sends the invite for a previously shown slot
	confirmProposal := func(chatID int64, index int) {
		session := stateManager.Get(chatID)
		if session.State != state.StateChoosingProposal || len(session.Proposals) == 0 {
			bot.SendMessage(chatID, "There is nothing to confirm right now. Use /schedule first.")
			return
		}

		candidate, err := dir.CandidateByID(session.CandidateID)
		if err != nil {
			log.Error("Failed to resolve candidate %s: %v", session.CandidateID, err)
			bot.SendMessage(chatID, messageService.GenerateErrorMessage("confirm the meeting"))
			return
		}

		proposal := &assistant.Proposal{
			Candidate:   candidate,
			MeetingType: session.MeetingType,
			Slots:       session.Proposals,
		}
		inv, err := agent.Confirm(proposal, index)
		if err != nil {
			log.Error("Failed to confirm proposal: %v", err)
			bot.SendMessage(chatID, messageService.GenerateErrorMessage("send the invite"))
			return
		}

		stateManager.Clear(chatID)
		bot.SendMessage(chatID, messages.FormatConfirmation(inv))
	}

	// startScheduling shows the candidate picker
	startScheduling := func(chatID int64) {
		candidates := dir.ListCandidates()
		if len(candidates) == 0 {
			bot.SendMessage(chatID, "No upcoming new hires found.")
			return
		}

		stateManager.Update(chatID, state.Session{State: state.StateChoosingCandidate})

		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(candidates))
		for _, c := range candidates {
			label := fmt.Sprintf("%s (%s)", c.Name, c.StartDate.Format("Jan 2"))
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, "cand:"+c.ID),
			))
		}
		bot.SendMessageWithKeyboard(chatID, "Who is the meeting for?", tgbotapi.NewInlineKeyboardMarkup(rows...))
	}

	// Setup command handlers
	commandHandlers := map[string]telegram.CommandHandler{
		"start": func(message *tgbotapi.Message) {
			bot.SendMessage(message.Chat.ID, messageService.GenerateWelcomeMessage())
		},
		"help": func(message *tgbotapi.Message) {
			bot.SendMessage(message.Chat.ID, "Commands:\n"+
				"/candidates — list upcoming new hires\n"+
				"/schedule — set up an intro meeting\n"+
				"/invites — show sent invites\n\n"+
				"You can also just describe what you need, e.g. \"45 minute intro with Aisha's hiring manager before next Friday\".")
		},
		"candidates": func(message *tgbotapi.Message) {
			bot.SendMessage(message.Chat.ID, messages.FormatCandidateList(dir.ListCandidates()))
		},
		"schedule": func(message *tgbotapi.Message) {
			startScheduling(message.Chat.ID)
		},
		"confirm": func(message *tgbotapi.Message) {
			n, ok := parseConfirmReply(message.CommandArguments())
			if !ok {
				bot.SendMessage(message.Chat.ID, "Which option? Use /confirm 1.")
				return
			}
			confirmProposal(message.Chat.ID, n-1)
		},
		"invites": func(message *tgbotapi.Message) {
			sent, err := invites.SentInvites()
			if err != nil {
				log.Error("Failed to list invites: %v", err)
				bot.SendMessage(message.Chat.ID, messageService.GenerateErrorMessage("list invites"))
				return
			}
			bot.SendMessage(message.Chat.ID, messages.FormatInvites(sent))
		},
	}

	// Setup callback handlers
	callbackHandlers := map[string]telegram.CallbackHandler{
		"cand:": func(callback *tgbotapi.CallbackQuery) {
			chatID := callback.Message.Chat.ID
			candidateID := strings.TrimPrefix(callback.Data, "cand:")
			bot.AnswerCallbackQuery(callback.ID, "")

			stateManager.Update(chatID, state.Session{
				State:       state.StateChoosingCandidate,
				CandidateID: candidateID,
			})

			keyboard := tgbotapi.NewInlineKeyboardMarkup(
				tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData("Hiring Manager", "type:hm"),
					tgbotapi.NewInlineKeyboardButtonData("Reporting Manager", "type:rm"),
				),
				tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData("HRBP", "type:hrbp"),
				),
			)
			bot.SendMessageWithKeyboard(chatID, "Which introduction?", keyboard)
		},
		"type:": func(callback *tgbotapi.CallbackQuery) {
			chatID := callback.Message.Chat.ID
			bot.AnswerCallbackQuery(callback.ID, "")

			session := stateManager.Get(chatID)
			if session.CandidateID == "" {
				bot.SendMessage(chatID, "Please pick a candidate first with /schedule.")
				return
			}

			meetingType, ok := meetingTypeByCode[strings.TrimPrefix(callback.Data, "type:")]
			if !ok {
				bot.SendMessage(chatID, "Unknown meeting type.")
				return
			}
			showProposals(chatID, session.CandidateID, meetingType, 0, time.Time{})
		},
		"slot:": func(callback *tgbotapi.CallbackQuery) {
			bot.AnswerCallbackQuery(callback.ID, "Sending invite...")
			index, err := strconv.Atoi(strings.TrimPrefix(callback.Data, "slot:"))
			if err != nil {
				return
			}
			confirmProposal(callback.Message.Chat.ID, index)
		},
	}

	// Setup default handler: free-form text goes through the NL parser
	defaultHandler := func(update tgbotapi.Update) {
		if update.Message == nil || update.Message.Text == "" || update.Message.IsCommand() {
			return
		}
		chatID := update.Message.Chat.ID
		text := update.Message.Text

		// Cheap path first: "confirm 2" style replies while choosing.
		session := stateManager.Get(chatID)
		if session.State == state.StateChoosingProposal {
			if n, ok := parseConfirmReply(text); ok {
				confirmProposal(chatID, n-1)
				return
			}
		}

		names := make([]string, 0)
		for _, c := range dir.ListCandidates() {
			names = append(names, c.Name)
		}

		cmd, err := openaiClient.ParseSchedulingCommand(text, names)
		if err != nil {
			log.Error("Failed to parse command: %v", err)
			bot.SendMessage(chatID, "🤖 I didn't catch that. Try /help for what I can do.")
			return
		}

		switch cmd.Action {
		case "list_candidates":
			bot.SendMessage(chatID, messages.FormatCandidateList(dir.ListCandidates()))
		case "invites":
			sent, err := invites.SentInvites()
			if err != nil {
				bot.SendMessage(chatID, messageService.GenerateErrorMessage("list invites"))
				return
			}
			bot.SendMessage(chatID, messages.FormatInvites(sent))
		case "confirm":
			if cmd.ProposalNumber > 0 {
				confirmProposal(chatID, cmd.ProposalNumber-1)
				return
			}
			bot.SendMessage(chatID, "Which option? Reply like \"confirm 1\".")
		case "schedule":
			candidate, err := dir.CandidateByName(cmd.CandidateName)
			if err != nil {
				startScheduling(chatID)
				return
			}
			meetingType := models.MeetingType(cmd.MeetingType)
			if cmd.MeetingType == "" {
				meetingType = models.MeetingIntroHiringManager
			}
			var deadline time.Time
			if cmd.DeadlineDays > 0 {
				deadline = time.Now().UTC().AddDate(0, 0, cmd.DeadlineDays)
			}
			showProposals(chatID, candidate.ID, meetingType, cmd.DurationMinutes, deadline)
		default:
			bot.SendMessage(chatID, "🤖 I can schedule onboarding intros. Try /help.")
		}
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutting down...")
		store.Close()
		os.Exit(0)
	}()

	// Start the bot
	log.Info("Bot is now running. Press CTRL-C to exit.")
	if err := bot.Start(commandHandlers, callbackHandlers, defaultHandler); err != nil {
		log.Error("Error running bot: %v", err)
		os.Exit(1)
	}
}

// parseConfirmReply recognizes plain "confirm N" / "N" replies without a
// round-trip to the language model.
func parseConfirmReply(text string) (int, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.TrimPrefix(text, "confirm")
	text = strings.TrimSpace(text)
	n, err := strconv.Atoi(text)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
