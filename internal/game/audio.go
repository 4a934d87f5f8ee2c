package game

// Speech and sound are platform collaborators: the round asks for them and
// carries on whether or not they work.

const (
	SpeechLocale = "ko-KR"
	SpeechRate   = 0.9
)

// Speaker reads a sentence aloud. Implementations cancel any utterance still
// in flight before starting the new one.
type Speaker interface {
	Speak(text, locale string, rate float64) error
}

// SoundEffects plays short fire-and-forget cues. PlayShoot restarts the cue
// from the beginning if it is already playing.
type SoundEffects interface {
	PlayShoot() error
}

// Silent implements Speaker and SoundEffects with no output.
type Silent struct{}

func (Silent) Speak(string, string, float64) error { return nil }
func (Silent) PlayShoot() error                    { return nil }
