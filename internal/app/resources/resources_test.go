package resources

import "testing"

func TestCheckLayout(t *testing.T) {
	if err := checkLayout(); err != nil {
		t.Fatalf("checkLayout: %v", err)
	}
}

func TestCheckLayout_MissingBlock(t *testing.T) {
	saved := requiredBlocks
	t.Cleanup(func() { requiredBlocks = saved })

	requiredBlocks = append([]string{}, saved...)
	requiredBlocks = append(requiredBlocks, "page_sidebar")
	if err := checkLayout(); err == nil {
		t.Fatal("expected an error for a missing block")
	}
}
