package domain

import "testing"

func TestChoosePlan(t *testing.T) {
	models := DefaultModelSet()

	tests := []struct {
		name     string
		detected string
		want     GenerationPlan
	}{
		{
			name:     "english transcribes with the mid-size model",
			detected: "english",
			want:     GenerationPlan{Model: "small", Task: "transcribe", Language: "en"},
		},
		{
			name:     "spanish translates with the large model",
			detected: "spanish",
			want:     GenerationPlan{Model: "large", Task: "translate", Language: "spanish"},
		},
		{
			name:     "unrecognized names still pass through",
			detected: "klingon",
			want:     GenerationPlan{Model: "large", Task: "translate", Language: "klingon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChoosePlan(tt.detected, models)
			if got != tt.want {
				t.Errorf("ChoosePlan(%q) = %+v, want %+v", tt.detected, got, tt.want)
			}
		})
	}
}

func TestChoosePlan_CustomModels(t *testing.T) {
	models := ModelSet{Detection: "tiny", English: "base", Translation: "medium"}

	if got := ChoosePlan("english", models); got.Model != "base" {
		t.Errorf("english plan model = %s, want base", got.Model)
	}
	if got := ChoosePlan("italian", models); got.Model != "medium" {
		t.Errorf("italian plan model = %s, want medium", got.Model)
	}
}

func TestDefaultModelSet(t *testing.T) {
	m := DefaultModelSet()
	if m.Detection != "tiny" || m.English != "small" || m.Translation != "large" {
		t.Errorf("DefaultModelSet() = %+v, want tiny/small/large", m)
	}
}
