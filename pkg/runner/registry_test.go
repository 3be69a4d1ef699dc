package runner

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		tag          string
		wantExt      string
		wantCommand  string
		wantRunnable bool
	}{
		{"python", ".py", "python3", true},
		{"javascript", ".js", "node", true},
		{"go", ".go", "go", false},
		{"sql", ".sql", "sqlite3", false},
		{"matlab", ".m", "octave", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			lang, ok := Lookup(tt.tag)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.tag)
			}
			if lang.Ext != tt.wantExt {
				t.Errorf("Ext = %q, want %q", lang.Ext, tt.wantExt)
			}
			if lang.Command != tt.wantCommand {
				t.Errorf("Command = %q, want %q", lang.Command, tt.wantCommand)
			}
			if lang.Supported != tt.wantRunnable {
				t.Errorf("Supported = %v, want %v", lang.Supported, tt.wantRunnable)
			}
		})
	}

	if _, ok := Lookup("cobol"); ok {
		t.Error("Lookup(cobol) found an unregistered language")
	}
}

func TestIsExecutable(t *testing.T) {
	if !IsExecutable("python") || !IsExecutable("javascript") {
		t.Error("python and javascript must be executable")
	}

	for _, tag := range []string{"java", "cpp", "rust", "html", "text", "unknown"} {
		if IsExecutable(tag) {
			t.Errorf("IsExecutable(%q) = true, want false", tag)
		}
	}
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	if len(langs) != 19 {
		t.Fatalf("Languages() returned %d entries, want 19", len(langs))
	}

	var executable int
	for i, lang := range langs {
		if i > 0 && langs[i-1].Tag > lang.Tag {
			t.Errorf("Languages() not sorted: %q before %q", langs[i-1].Tag, lang.Tag)
		}
		if lang.Supported {
			executable++
		}
	}
	if executable != 2 {
		t.Errorf("registry has %d executable languages, want 2", executable)
	}
}
