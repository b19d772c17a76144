package mindmap

import "testing"

func TestBuildTopics_Basic(t *testing.T) {
	topics := BuildTopics(ParseOutline("# A\n## B\n- c"))
	if len(topics) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(topics))
	}
	top := topics[0]
	if top.Title != "A" {
		t.Errorf("expected topic title A, got %q", top.Title)
	}
	if len(top.LooseItems) != 0 {
		t.Errorf("expected no loose items, got %v", top.LooseItems)
	}
	if len(top.Subtopics) != 1 || top.Subtopics[0].Title != "B" {
		t.Fatalf("expected one subtopic B, got %v", top.Subtopics)
	}
	if items := top.Subtopics[0].Items; len(items) != 1 || items[0] != "c" {
		t.Errorf("expected subtopic items [c], got %v", items)
	}
}

func TestBuildTopics_LooseItemsBeforeSubtopic(t *testing.T) {
	topics := BuildTopics(ParseOutline("# A\n- x\n## B\n- y"))
	if len(topics) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(topics))
	}
	top := topics[0]
	if len(top.LooseItems) != 1 || top.LooseItems[0] != "x" {
		t.Errorf("expected loose items [x], got %v", top.LooseItems)
	}
	if len(top.Subtopics) != 1 || len(top.Subtopics[0].Items) != 1 || top.Subtopics[0].Items[0] != "y" {
		t.Errorf("expected subtopic B with items [y], got %v", top.Subtopics)
	}
}

func TestBuildTopics_ItemsAttachToLatestSubtopic(t *testing.T) {
	topics := BuildTopics(ParseOutline("# T\n## S1\n- a\n- b\n## S2\n- c"))
	top := topics[0]
	if len(top.Subtopics) != 2 {
		t.Fatalf("expected 2 subtopics, got %d", len(top.Subtopics))
	}
	if got := top.Subtopics[0].Items; len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("S1 items: got %v", got)
	}
	if got := top.Subtopics[1].Items; len(got) != 1 || got[0] != "c" {
		t.Errorf("S2 items: got %v", got)
	}
}

func TestBuildTopics_OrphanSubtopicDropped(t *testing.T) {
	topics := BuildTopics(ParseOutline("## orphan\n# A"))
	if len(topics) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(topics))
	}
	if len(topics[0].Subtopics) != 0 {
		t.Errorf("orphan subtopic should be dropped, got %v", topics[0].Subtopics)
	}
}

func TestBuildTopics_OrphanItemsDropped(t *testing.T) {
	topics := BuildTopics(ParseOutline("- stray\n- another\n# A"))
	if len(topics) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(topics))
	}
	if len(topics[0].LooseItems) != 0 {
		t.Errorf("stray items should be dropped, got %v", topics[0].LooseItems)
	}
}

func TestBuildTopics_MultipleTopicsKept(t *testing.T) {
	topics := BuildTopics(ParseOutline("# First\n- a\n# Second\n- b"))
	if len(topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(topics))
	}
	if topics[0].Title != "First" || topics[1].Title != "Second" {
		t.Errorf("unexpected titles: %q, %q", topics[0].Title, topics[1].Title)
	}
	if len(topics[0].LooseItems) != 1 || topics[0].LooseItems[0] != "a" {
		t.Errorf("first topic loose items: got %v", topics[0].LooseItems)
	}
	if len(topics[1].LooseItems) != 1 || topics[1].LooseItems[0] != "b" {
		t.Errorf("second topic loose items: got %v", topics[1].LooseItems)
	}
}

func TestBuildTopics_DeepHeadingsIgnored(t *testing.T) {
	topics := BuildTopics(ParseOutline("# A\n### deep\n- x"))
	top := topics[0]
	if len(top.Subtopics) != 0 {
		t.Errorf("level-3 heading must not open a subtopic, got %v", top.Subtopics)
	}
	if len(top.LooseItems) != 1 || top.LooseItems[0] != "x" {
		t.Errorf("item should land in loose items, got %v", top.LooseItems)
	}
}

func TestBuildTopics_NoNodes(t *testing.T) {
	if topics := BuildTopics(nil); len(topics) != 0 {
		t.Errorf("expected no topics, got %v", topics)
	}
}
