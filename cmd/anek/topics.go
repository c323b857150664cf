package anek

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/anek/pkg/cobrax/topics"
	"github.com/arthur-debert/anek/pkg/types"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// initTopics replaces help with the topic help: the embedded topics plus
// one topic per category.
func initTopics(rootCmd *cobra.Command) error {
	source, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return err
	}
	tm, err := topics.InitializeWithOptions(rootCmd, source, topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	})
	if err != nil {
		return err
	}
	for _, c := range types.AllCategories() {
		tm.AddTopic(c.DirName(), ".md", fmt.Sprintf("# %s\n\n%s\n", c.Title(), c.Description()))
	}
	return nil
}
