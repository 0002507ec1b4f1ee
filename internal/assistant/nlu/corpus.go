package nlu

import "github.com/bookingbot/server/internal/assistant/model"

// DefaultTrainingSet returns the built-in labeled corpus used when no
// persisted model exists. Examples deliberately include common misspellings
// so the classifier tolerates them even before typo correction.
func DefaultTrainingSet() []TrainingExample {
	corpus := map[model.Intent][]string{
		model.IntentGreeting: {
			"hello", "hi", "hey", "good morning", "good afternoon",
			"good evening", "greetings", "hi there", "hello there",
			"hey there", "whats up", "howdy", "yo", "sup",
			"helo", "hlo", "helllo", "hii", "heyy", "hallo",
			"privet", "привет", "zdravstvuyte", "здравствуйте",
		},
		model.IntentBookClass: {
			"i want to book a class", "book a class", "schedule a class",
			"i would like to schedule", "can i book", "i need to book",
			"reserve a class", "make a booking", "book me in",
			"i want to join a class", "sign me up", "register for class",
			"i want to attend", "schedule me for", "book appointment",
			"book", "reserve", "sign up", "join",
			"register", "enroll", "book me", "i want to book", "need booking",
		},
		model.IntentCancelClass: {
			"cancel my class", "i want to cancel", "cancel booking",
			"i need to cancel", "cancel my appointment", "remove booking",
			"i cant make it", "cancel my session", "i want to cancel my class",
			"unbook", "cancel reservation", "i need to unregister",
			"remove my booking", "cancel my reservation", "cancl", "cancle",
			"cancel", "cncl", "canc", "unbook me", "remove me", "delete booking",
			"scratch that", "nevermind", "dont want it", "change my mind",
		},
		model.IntentShowSchedule: {
			"show schedule", "what classes are available", "show me schedule",
			"what time slots", "available times", "when can i book",
			"show me available classes", "what are the timings",
			"display schedule", "view schedule", "see schedule",
			"available slots", "free slots", "open times",
			"times", "slots", "availability", "whats available", "show times",
			"when available", "free times", "open slots",
		},
		model.IntentGoodbye: {
			"bye", "goodbye", "see you", "see you later", "talk to you later",
			"have a good day", "have a nice day", "farewell", "take care",
			"catch you later", "until next time", "gotta go", "im leaving",
			"thanks bye", "ok bye",
		},
		model.IntentSearchTutor: {
			"find me a tutor", "i am looking for a math tutor", "search for tutors",
			"find a teacher", "looking for an english tutor", "i need a tutor",
			"find tutor", "search tutor", "who can teach me physics",
			"looking for a teacher", "find me someone who teaches chemistry",
			"i want to find a tutor", "search for a spanish teacher",
			"can you find a tutor", "help me find a tutor",
		},
		model.IntentViewBookings: {
			"show my bookings", "what are my bookings", "list my bookings",
			"view my bookings", "my appointments", "show my appointments",
			"what have i booked", "see my reservations", "my schedule please",
			"display my bookings", "what do i have booked", "my booking list",
			"check my bookings", "show me what i booked",
		},
		model.IntentCancelBooking: {
			"cancel my booking", "delete my booking", "remove my appointment",
			"cancel a booking", "i want to cancel my booking",
			"cancel the appointment", "delete that booking",
			"remove one of my bookings", "cancel my schedule",
			"i need to cancel a booking", "drop my booking",
			"cancel booking please", "delete appointment",
		},
		model.IntentGeneral: {
			"what can you do", "help", "how does this work", "tell me more",
			"what is this", "i have a question", "can you help me",
			"what are my options", "hmm", "ok", "thanks", "thank you",
			"interesting", "what else", "not sure",
		},
	}

	out := make([]TrainingExample, 0, 180)
	for intent, texts := range corpus {
		for _, t := range texts {
			out = append(out, TrainingExample{Text: t, Intent: intent})
		}
	}
	return out
}
