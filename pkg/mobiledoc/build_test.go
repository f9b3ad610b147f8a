package mobiledoc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomobiledoc/pkg/mobiledoc"
	"github.com/yaklabco/gomobiledoc/pkg/post"
)

func TestBuild_ListItemsGetOwnRunLists(t *testing.T) {
	t.Parallel()

	doc, err := mobiledoc.Build([]mobiledoc.Instruction{
		{Op: mobiledoc.OpOpenPost},
		{Op: mobiledoc.OpOpenListSection, TagName: "ol"},
		{Op: mobiledoc.OpOpenListItem},
		{Op: mobiledoc.OpOpenTextRun, Value: "one"},
		{Op: mobiledoc.OpOpenStyle, TagName: "b"},
		{Op: mobiledoc.OpOpenListItem},
		{Op: mobiledoc.OpOpenTextRun, Value: "two", ClosingCount: 1},
		{Op: mobiledoc.OpOpenMarkupSection, TagName: "p"},
		{Op: mobiledoc.OpOpenTextRun, Value: "after"},
	})
	require.NoError(t, err)
	require.Len(t, doc.Sections, 2)

	list := doc.Sections[0]
	assert.Equal(t, mobiledoc.SectionList, list.Kind)
	require.Len(t, list.Items, 2)
	require.Len(t, list.Items[0], 1)
	assert.Equal(t, "one", list.Items[0][0].Text)
	assert.Equal(t, []int{0}, list.Items[0][0].StyleIndexes)
	require.Len(t, list.Items[1], 1)
	assert.Equal(t, "two", list.Items[1][0].Text)
	assert.Equal(t, 1, list.Items[1][0].ClosingCount)

	markup := doc.Sections[1]
	require.Len(t, markup.Runs, 1)
	assert.Equal(t, "after", markup.Runs[0].Text)
}

func TestBuild_StylesAttachToMostRecentRun(t *testing.T) {
	t.Parallel()

	doc, err := mobiledoc.Build([]mobiledoc.Instruction{
		{Op: mobiledoc.OpOpenPost},
		{Op: mobiledoc.OpOpenMarkupSection, TagName: "p"},
		{Op: mobiledoc.OpOpenTextRun, Value: "a"},
		{Op: mobiledoc.OpOpenStyle, TagName: "b"},
		{Op: mobiledoc.OpOpenEmbedRun, Name: "mention", Value: "@x"},
		{Op: mobiledoc.OpOpenStyle, TagName: "i"},
		{Op: mobiledoc.OpOpenStyle, TagName: "b"},
	})
	require.NoError(t, err)

	runs := doc.Sections[0].Runs
	require.Len(t, runs, 2)
	assert.Equal(t, []int{0}, runs[0].StyleIndexes)
	assert.Equal(t, []int{1, 0}, runs[1].StyleIndexes)
	assert.Equal(t, mobiledoc.ContentEmbed, runs[1].Kind)
	assert.Equal(t, 0, runs[1].EmbedIndex)
	assert.Len(t, doc.Styles, 2)
}

func TestBuild_Malformed(t *testing.T) {
	t.Parallel()

	open := mobiledoc.Instruction{Op: mobiledoc.OpOpenPost}

	tests := []struct {
		name         string
		instructions []mobiledoc.Instruction
	}{
		{"empty stream", nil},
		{"section before post", []mobiledoc.Instruction{
			{Op: mobiledoc.OpOpenMarkupSection, TagName: "p"},
		}},
		{"second post", []mobiledoc.Instruction{open, open}},
		{"style with no run", []mobiledoc.Instruction{
			open,
			{Op: mobiledoc.OpOpenMarkupSection, TagName: "p"},
			{Op: mobiledoc.OpOpenStyle, TagName: "b"},
		}},
		{"style after section change", []mobiledoc.Instruction{
			open,
			{Op: mobiledoc.OpOpenMarkupSection, TagName: "p"},
			{Op: mobiledoc.OpOpenTextRun, Value: "a"},
			{Op: mobiledoc.OpOpenMarkupSection, TagName: "p"},
			{Op: mobiledoc.OpOpenStyle, TagName: "b"},
		}},
		{"style after new list item", []mobiledoc.Instruction{
			open,
			{Op: mobiledoc.OpOpenListSection, TagName: "ul"},
			{Op: mobiledoc.OpOpenListItem},
			{Op: mobiledoc.OpOpenTextRun, Value: "a"},
			{Op: mobiledoc.OpOpenListItem},
			{Op: mobiledoc.OpOpenStyle, TagName: "b"},
		}},
		{"run outside section", []mobiledoc.Instruction{
			open,
			{Op: mobiledoc.OpOpenTextRun, Value: "a"},
		}},
		{"embed outside section", []mobiledoc.Instruction{
			open,
			{Op: mobiledoc.OpOpenEmbedRun, Name: "x"},
		}},
		{"run in list without item", []mobiledoc.Instruction{
			open,
			{Op: mobiledoc.OpOpenListSection, TagName: "ul"},
			{Op: mobiledoc.OpOpenTextRun, Value: "a"},
		}},
		{"run after image section", []mobiledoc.Instruction{
			open,
			{Op: mobiledoc.OpOpenMarkupSection, TagName: "p"},
			{Op: mobiledoc.OpOpenImageSection, Src: "x"},
			{Op: mobiledoc.OpOpenTextRun, Value: "a"},
		}},
		{"list item outside list", []mobiledoc.Instruction{
			open,
			{Op: mobiledoc.OpOpenMarkupSection, TagName: "p"},
			{Op: mobiledoc.OpOpenListItem},
		}},
		{"unknown op", []mobiledoc.Instruction{open, {Op: mobiledoc.Op(200)}}},
		{"zero op", []mobiledoc.Instruction{open, {}}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			doc, err := mobiledoc.Build(testCase.instructions)
			require.Error(t, err)
			assert.True(t, errors.Is(err, mobiledoc.ErrMalformedInstructionSequence), "got %v", err)
			assert.Nil(t, doc)
		})
	}
}

func TestBuild_UnencodablePayload(t *testing.T) {
	t.Parallel()

	_, err := mobiledoc.Build([]mobiledoc.Instruction{
		{Op: mobiledoc.OpOpenPost},
		{Op: mobiledoc.OpOpenCardSection, Name: "bad", Payload: post.Payload{"ch": make(chan int)}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, mobiledoc.ErrUnencodablePayload))
}
