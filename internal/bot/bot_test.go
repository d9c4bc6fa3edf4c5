package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/embebot/embebot/internal/domain"
)

func TestCommands(t *testing.T) {
	cmds := commands()
	if len(cmds) != 3 {
		t.Fatalf("commands() returned %d commands, want 3", len(cmds))
	}

	want := map[string]bool{"vx": false, "ig": false, "rx": false}
	for _, cmd := range cmds {
		if _, ok := want[cmd.Name]; !ok {
			t.Errorf("unexpected command %q", cmd.Name)
			continue
		}
		want[cmd.Name] = true

		if len(cmd.Options) != 1 {
			t.Errorf("command %q has %d options, want 1", cmd.Name, len(cmd.Options))
			continue
		}
		opt := cmd.Options[0]
		if opt.Name != "url" || opt.Type != discordgo.ApplicationCommandOptionString || !opt.Required {
			t.Errorf("command %q option = %+v, want required string url", cmd.Name, opt)
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestStringOption(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{
				Name:  "url",
				Type:  discordgo.ApplicationCommandOptionString,
				Value: "https://x.com/user/status/1",
			},
		},
	}

	if got := stringOption(data, "url"); got != "https://x.com/user/status/1" {
		t.Errorf("stringOption = %q", got)
	}
	if got := stringOption(data, "missing"); got != "" {
		t.Errorf("stringOption for absent option = %q, want empty", got)
	}
}

func TestBuildEmbed(t *testing.T) {
	sum := domain.Summary{
		Description: "mirá esto <https://a.com>",
		AuthorName:  "Juan Pérez",
		Handle:      "juanp",
		AvatarURL:   "https://unavatar.io/x/juanp",
		Footer:      "Video • 3.0MB",
	}

	embed := buildEmbed(sum)

	if embed.Color != twitterBlue {
		t.Errorf("Color = %#x", embed.Color)
	}
	if embed.Description != sum.Description {
		t.Errorf("Description = %q", embed.Description)
	}
	if embed.Author == nil || embed.Author.Name != "Juan Pérez (@juanp)" {
		t.Errorf("Author = %+v", embed.Author)
	}
	if embed.Author.IconURL != sum.AvatarURL {
		t.Errorf("IconURL = %q", embed.Author.IconURL)
	}
	if embed.Footer == nil || embed.Footer.Text != "Video • 3.0MB" {
		t.Errorf("Footer = %+v", embed.Footer)
	}
}

func TestBuildEmbed_NoAuthor(t *testing.T) {
	embed := buildEmbed(domain.Summary{Description: "Video de X", Footer: "Video • 1.0MB"})
	if embed.Author != nil {
		t.Errorf("Author = %+v, want nil without a name", embed.Author)
	}
}
