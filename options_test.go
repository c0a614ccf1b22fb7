package twempest

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRenderOptionsValidate - Option dependencies
// ---------------------------------------------------------------------------

func TestRenderOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    RenderOptions
		wantErr error
	}{
		{name: "defaults", opts: DefaultRenderOptions()},
		{name: "file only", opts: RenderOptions{RenderFile: "{{ .ID }}.md"}},
		{name: "file and images", opts: RenderOptions{RenderFile: "a.md", ImagePath: "img"}},
		{name: "full image setup", opts: RenderOptions{RenderFile: "a.md", ImagePath: "img", ImageURL: "/img"}},
		{name: "count", opts: RenderOptions{Count: 5}},
		{name: "image path without file", opts: RenderOptions{ImagePath: "img"}, wantErr: ErrImagePathWithoutFile},
		{name: "image url without path", opts: RenderOptions{RenderFile: "a.md", ImageURL: "/img"}, wantErr: ErrImageURLWithoutPath},
		{name: "negative count", opts: RenderOptions{Count: -1}, wantErr: ErrInvalidCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRenderOptions_ToConsole(t *testing.T) {
	t.Parallel()

	if !DefaultRenderOptions().ToConsole() {
		t.Error("default options should render to console")
	}
	if (RenderOptions{RenderFile: "x"}).ToConsole() {
		t.Error("options with a render file should not render to console")
	}
}
