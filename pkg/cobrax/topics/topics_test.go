package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicFS() fstest.MapFS {
	return fstest.MapFS{
		"help/select.txt":           {Data: []byte("Information about selections")},
		"help/templates.md":         {Data: []byte("# Templates\n\nPlaceholder syntax")},
		"help/config.txxt":          {Data: []byte("Configuration Guide\n==================")},
		"help/ignore.json":          {Data: []byte("This should be ignored")},
		"help/option-overwrite.txt": {Data: []byte("Overwrite help")},
		"help/advanced/loops.txt":   {Data: []byte("Loop help")},
	}
}

func TestTopicManager_ScanTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(topicFS())
		require.NoError(t, tm.scanTopics())

		tests := []struct {
			name     string
			expected bool
			content  string
		}{
			{"select", true, "Information about selections"},
			{"templates", true, "# Templates\n\nPlaceholder syntax"},
			{"loops", true, "Loop help"},
			{"config", false, ""},
			{"ignore", false, ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				topic, exists := tm.GetTopic(tt.name)
				assert.Equal(t, tt.expected, exists)
				if exists {
					assert.Equal(t, tt.content, topic.Content)
				}
			})
		}
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(topicFS(), Options{Extensions: []string{".txt", ".md", ".txxt"}})
		require.NoError(t, tm.scanTopics())

		topic, exists := tm.GetTopic("config")
		require.True(t, exists)
		assert.Equal(t, ".txxt", topic.Format)
	})

	t.Run("no source", func(t *testing.T) {
		tm := New(nil)
		require.NoError(t, tm.scanTopics())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestTopicManager_GetTopic(t *testing.T) {
	tm := New(topicFS())
	require.NoError(t, tm.scanTopics())

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"select", "select", true},
		{"option-overwrite", "option-overwrite", true},
		{"overwrite", "option-overwrite", true},
		{"--overwrite", "option-overwrite", true},
		{"-overwrite", "option-overwrite", true},
		{"-o", "", false},
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, exists := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, exists)
			if exists {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestTopicManager_AddTopicAndList(t *testing.T) {
	tm := New(nil)
	tm.AddTopic("inputs", ".md", "# Inputs")
	tm.AddTopic("batch", ".md", "# Batch")

	assert.Equal(t, []string{"batch", "inputs"}, tm.ListTopics())
	topic, exists := tm.GetTopic("inputs")
	require.True(t, exists)
	assert.Equal(t, "# Inputs", tm.Render(topic))
}

func newRoot() *cobra.Command {
	rootCmd := &cobra.Command{Use: "testapp", Short: "Test application"}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run something",
		Run:   func(cmd *cobra.Command, args []string) {},
	})
	return rootCmd
}

func TestInitialize(t *testing.T) {
	rootCmd := newRoot()

	tm, err := Initialize(rootCmd, topicFS())
	require.NoError(t, err)
	require.NotNil(t, tm)

	helpCmd, _, err := rootCmd.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help", helpCmd.Name())
	assert.Equal(t, "help [command or topic]", helpCmd.Use)
}

func TestIntegration_HelpCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{"topic", []string{"help", "select"}, []string{"Information about selections"}},
		{"option_topic", []string{"help", "--overwrite"}, []string{"Overwrite help"}},
		{"topic_list", []string{"help", "topics"}, []string{"General topics:", "  select", "Option topics:", "  --overwrite", "testapp help <topic>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd := newRoot()
			_, err := Initialize(rootCmd, topicFS())
			require.NoError(t, err)

			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(tt.args)
			require.NoError(t, rootCmd.Execute())

			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestPlainRenderer(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "# Title", r.Render("# Title", ".md"))
}

func TestGlamourRenderer_NonMarkdownUnchanged(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
}

func TestGlamourRenderer_Markdown(t *testing.T) {
	r := &GlamourRenderer{Style: "notty", Width: 40}
	out := r.Render("# Loops\n\nEvery **combination** runs.\n", ".markdown")
	assert.Contains(t, out, "Loops")
	assert.Contains(t, out, "combination")
	assert.NotEqual(t, "# Loops\n\nEvery **combination** runs.\n", out)
}
