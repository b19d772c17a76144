package mindmap

// Topic is the root of a rendered mind map. Bullets that appear before
// any subtopic has been opened land in LooseItems.
type Topic struct {
	Title      string
	Subtopics  []Subtopic
	LooseItems []string
}

// Subtopic is a second-level branch with its bullet items.
type Subtopic struct {
	Title string
	Items []string
}

// BuildTopics folds the flat outline into topics in a single
// left-to-right pass. The only cursor state is the current topic; items
// always attach to its most recently opened subtopic, falling back to
// the topic's loose items. Subtopics and items with no topic to attach
// to are dropped.
func BuildTopics(nodes []Node) []Topic {
	var topics []Topic
	cur := -1

	for _, n := range nodes {
		switch n.Kind {
		case KindHeading:
			switch n.Level {
			case 1:
				topics = append(topics, Topic{Title: n.Title})
				cur = len(topics) - 1
			case 2:
				if cur >= 0 {
					topics[cur].Subtopics = append(topics[cur].Subtopics, Subtopic{Title: n.Title})
				}
			}
		case KindItem:
			if cur < 0 {
				continue
			}
			t := &topics[cur]
			if len(t.Subtopics) > 0 {
				last := &t.Subtopics[len(t.Subtopics)-1]
				last.Items = append(last.Items, n.Title)
			} else {
				t.LooseItems = append(t.LooseItems, n.Title)
			}
		}
	}
	return topics
}
