package mindmap

import (
	"fmt"
	"strings"

	"github.com/mindbuddy/mindbuddy/internal/room"
)

// Prompt template sections. The format rules double as the structural
// contract with ParseOutline (# topic, ## subtopic, - item), so wording
// edits here must keep those markers intact.
const (
	roomPromptIntro = "請為以下討論室的內容生成一個結構化的心智圖 Markdown 格式總結。\n\n"

	roomPromptNoTopics = "目前討論室還沒有任何主題。\n"

	docPromptIntro = "請為以下文件內容生成一個結構化的心智圖 Markdown 格式總結。\n\n"

	promptFormatRules = `
請根據以上內容,生成一個結構化的心智圖 Markdown 格式:

要求:
1. 使用 # 作為主標題 (主題列表)
2. 使用 ## 作為次級標題 (各個討論主題)
3. 使用 - 作為要點列表 (重要觀點、共識、分歧點)
4. 內容要精煉、結構清晰
5. 突出重點和共識
6. 標注有爭議的觀點
7. 使用繁體中文

範例格式:
# 討論主題名稱
## 主題一
- 主要觀點1
- 主要觀點2
- 共識: xxx
## 主題二
- 重點1
- 重點2
- 分歧: xxx

請直接輸出 Markdown 格式,不要任何前綴說明:
`
)

// TallyFunc looks up the vote tally for a comment id.
type TallyFunc func(commentID string) room.VoteTally

// BuildPrompt renders a room's discussion state into the instruction
// string for the AI service: one section per topic, one bullet per
// comment with its vote counts, followed by the format rules. A room
// with no topics gets the short no-topics form without rules.
func BuildPrompt(rm room.Room, tally TallyFunc) string {
	var sb strings.Builder
	sb.WriteString(roomPromptIntro)

	if len(rm.Topics) == 0 {
		sb.WriteString(roomPromptNoTopics)
		return sb.String()
	}

	sb.WriteString("討論主題與內容:\n\n")
	for _, t := range rm.Topics {
		name := t.Name
		if name == "" {
			name = "未命名主題"
		}
		fmt.Fprintf(&sb, "## 主題: %s\n\n", name)

		if len(t.Comments) == 0 {
			continue
		}
		sb.WriteString("留言:\n")
		for _, c := range t.Comments {
			nick := c.Nickname
			if nick == "" {
				nick = "匿名"
			}
			v := tally(c.ID)
			fmt.Fprintf(&sb, "- %s: %s (👍%d 👎%d)\n", nick, c.Content, v.Good, v.Bad)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(promptFormatRules)
	return sb.String()
}

// BuildDocumentPrompt renders an uploaded document's extracted text into
// the same instruction shape, for the generate-from-document path.
func BuildDocumentPrompt(title, text string) string {
	var sb strings.Builder
	sb.WriteString(docPromptIntro)
	fmt.Fprintf(&sb, "文件標題: %s\n\n", title)
	sb.WriteString("文件內容:\n")
	sb.WriteString(text)
	sb.WriteString("\n")
	sb.WriteString(promptFormatRules)
	return sb.String()
}
