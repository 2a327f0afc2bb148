package domain

// Tasks understood by the recognition tool
const (
	TaskTranscribe = "transcribe"
	TaskTranslate  = "translate"
)

// Output formats requested from the recognition tool
const (
	FormatText = "txt"
	FormatSRT  = "srt"
)

// ModelSet names the whisper models used by each pass
type ModelSet struct {
	Detection   string // cheap model for language detection
	English     string // transcription model for English audio
	Translation string // translation model for everything else
}

// DefaultModelSet returns the stock tiny/small/large split
func DefaultModelSet() ModelSet {
	return ModelSet{
		Detection:   "tiny",
		English:     "small",
		Translation: "large",
	}
}

// GenerationPlan is the model/task/language triple for a generation pass
type GenerationPlan struct {
	Model    string
	Task     string
	Language string
}

// ChoosePlan selects the generation plan for a detected language.
// English audio is transcribed with the mid-size model; anything else
// is translated to English with the large model, passing the detected
// language through as the recognizer's source hint.
func ChoosePlan(detected string, models ModelSet) GenerationPlan {
	if detected != LanguageEnglish {
		return GenerationPlan{
			Model:    models.Translation,
			Task:     TaskTranslate,
			Language: detected,
		}
	}
	return GenerationPlan{
		Model:    models.English,
		Task:     TaskTranscribe,
		Language: "en",
	}
}
