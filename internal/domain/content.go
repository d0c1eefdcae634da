package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const blockTypeText = "text"

// ContentBlock is one element of structured turn content.
// A block is either a bare string (Fields is nil, Type is empty) or a tagged
// object; Fields keeps the object as received so provider-specific keys survive.
type ContentBlock struct {
	Type   string
	Text   string
	Fields map[string]any
}

// TextBlock returns a tagged text block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: blockTypeText, Text: text}
}

// StringBlock returns a bare string block.
func StringBlock(text string) ContentBlock {
	return ContentBlock{Text: text}
}

// MarshalJSON writes the block back in the shape it was received in.
func (b ContentBlock) MarshalJSON() ([]byte, error) {
	switch {
	case b.Fields != nil:
		return json.Marshal(b.Fields)
	case b.Type == "":
		return json.Marshal(b.Text)
	default:
		return json.Marshal(map[string]any{"type": b.Type, "text": b.Text})
	}
}

// UnmarshalJSON accepts a bare string or an object block.
func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*b = StringBlock(text)
		return nil
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("content block must be a string or an object: %w", err)
	}

	block := ContentBlock{Fields: fields}
	if t, ok := fields["type"].(string); ok {
		block.Type = t
	}
	if t, ok := fields["text"].(string); ok {
		block.Text = t
	}
	*b = block
	return nil
}

// hasText reports whether the block contributes text to a flattened view.
func (b ContentBlock) hasText() bool {
	if b.Fields == nil {
		return true
	}
	_, ok := b.Fields["text"]
	return ok
}

// wire returns the block as sent upstream: bare strings become tagged text blocks.
func (b ContentBlock) wire() any {
	if b.Fields != nil {
		return b.Fields
	}
	return map[string]any{"type": blockTypeText, "text": b.Text}
}

// Content is turn content: plain text or a sequence of blocks.
type Content struct {
	text       string
	blocks     []ContentBlock
	structured bool
}

// NewTextContent returns plain text content.
func NewTextContent(text string) Content {
	return Content{text: text}
}

// NewBlockContent returns structured content made of blocks.
func NewBlockContent(blocks ...ContentBlock) Content {
	return Content{blocks: blocks, structured: true}
}

// IsStructured reports whether the content is a block sequence.
func (c Content) IsStructured() bool {
	return c.structured
}

// Blocks returns the content blocks; nil for plain text.
func (c Content) Blocks() []ContentBlock {
	return c.blocks
}

// String returns the text of plain content or the flattened text of blocks with no separator.
func (c Content) String() string {
	return c.Flatten("")
}

// Flatten returns a text-only view. Blocks contribute their text joined by sep;
// blocks without text (images, tool payloads) contribute nothing.
func (c Content) Flatten(sep string) string {
	if !c.structured {
		return c.text
	}

	parts := make([]string, 0, len(c.blocks))
	for _, block := range c.blocks {
		if block.hasText() {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, sep)
}

// Wire returns the value placed in the upstream "content" field.
func (c Content) Wire() any {
	if !c.structured {
		return c.text
	}

	blocks := make([]any, 0, len(c.blocks))
	for _, block := range c.blocks {
		blocks = append(blocks, block.wire())
	}
	return blocks
}

// MarshalJSON writes plain content as a string and structured content as an array.
func (c Content) MarshalJSON() ([]byte, error) {
	if !c.structured {
		return json.Marshal(c.text)
	}
	if c.blocks == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.blocks)
}

// UnmarshalJSON accepts a string, an array of blocks, or null.
func (c *Content) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*c = Content{}
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var blocks []ContentBlock
		if err := json.Unmarshal(trimmed, &blocks); err != nil {
			return err
		}
		*c = NewBlockContent(blocks...)
		return nil
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err != nil {
		return errors.New("content must be a string or an array of blocks")
	}
	*c = NewTextContent(text)
	return nil
}
