package fragment_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/deeplinks/pkg/dom"
	"github.com/yaklabco/deeplinks/pkg/fragment"
)

func TestEncode_DuplicateNodes(t *testing.T) {
	t.Parallel()

	doc := dupesPage()
	uh := textAt(t, doc, 0)
	hm := textAt(t, doc, 22)
	require.Equal(t, hmmm, hm.Data)

	tests := []struct {
		name string
		r    *dom.Range
		v1   string
		v2   string
	}{
		{
			name: "unique ends need no suffix",
			r:    span(uh, 0, hm, 4),
			v1:   "#1EdoNr3xj_:0.TxIWFV5Nq:4",
			v2:   "#2EdoNr3xj_:0.TxIWFV5Nq:4",
		},
		{
			name: "short form across identical nodes",
			r:    span(identNode(t, doc, 1), 0, identNode(t, doc, 2), 20),
			v1:   "#1BLkIVltu0:0:20~sssss~0~1",
			v2:   "#2BLkIVltu0:0:K~sssss~0~1",
		},
		{
			name: "single ambiguous node",
			r:    span(identNode(t, doc, 3), 2, identNode(t, doc, 3), 9),
			v1:   "#1BLkIVltu0:2:9~sssss~2~2",
			v2:   "#2BLkIVltu0:2:9~sssss~2~2",
		},
		{
			name: "unique start, ambiguous end",
			r:    span(uh, 0, identQNode(t, doc, 2), 21),
			v1:   "#1EdoNr3xj_:0.7whfBu1TH:21~seeeee~0~2",
			v2:   "#2EdoNr3xj_:0.7whfBu1TH:L~seeeee~0~2",
		},
		{
			name: "ambiguous start, unique end",
			r:    span(identNode(t, doc, 4), 0, hm, 4),
			v1:   "#1BLkIVltu0:0.TxIWFV5Nq:4~ssssse~3~5",
			v2:   "#2BLkIVltu0:0.TxIWFV5Nq:4~ssssse~3~5",
		},
		{
			name: "both ends ambiguous",
			r:    span(identNode(t, doc, 2), 0, identQNode(t, doc, 4), 21),
			v1:   "#1BLkIVltu0:0.7whfBu1TH:21~sesesesese~2~7",
			v2:   "#2BLkIVltu0:0.7whfBu1TH:L~sesesesese~2~7",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := fragment.EncodeRanges(doc, []*dom.Range{tc.r}, 1)
			require.NoError(t, err)
			assert.Equal(t, tc.v1, got)

			got, err = fragment.EncodeRanges(doc, []*dom.Range{tc.r}, 2)
			require.NoError(t, err)
			assert.Equal(t, tc.v2, got)

			want := tc.r.String()
			assert.Equal(t, want, selectedText(t, doc, tc.v1))
			assert.Equal(t, want, selectedText(t, doc, tc.v2))
		})
	}
}

func TestEncode_SuffixOnlyWhenTagsRepeat(t *testing.T) {
	t.Parallel()

	doc := dupesPage()
	ranges := []*dom.Range{
		span(textAt(t, doc, 0), 1, textAt(t, doc, 22), 2),
		span(identNode(t, doc, 1), 0, identQNode(t, doc, 1), 3),
		span(identQNode(t, doc, 5), 0, textAt(t, doc, 22), 4),
	}

	for _, r := range ranges {
		frag, err := fragment.EncodeRanges(doc, []*dom.Range{r}, 1)
		require.NoError(t, err)

		results, err := fragment.Decode(doc, frag)
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.NotNil(t, results[0].Range)

		hasSuffix := strings.Contains(frag, "~")
		assert.Equal(t, hasSuffix, results[0].Descriptor.Dedupe != nil)

		scan := fragment.ScanTargets(doc, []fragment.Target{{
			StartHash: results[0].Descriptor.Start.Hash,
			EndHash:   results[0].Descriptor.End.Hash,
		}})[0]
		assert.Equal(t, scan.Ambiguous(), hasSuffix, frag)

		// Without the suffix the positional guess still finds unambiguous ranges.
		bare, _, _ := strings.Cut(frag, "~")
		if !scan.Ambiguous() {
			assert.Equal(t, r.String(), selectedText(t, doc, bare))
		}
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	doc := page(
		tree("h1", "Deep links"), "\n",
		tree("p", "Select ", tree("b", "any"), " run of text."), "\n",
		tree("ul", tree("li", "first item"), tree("li", "second ", tree("i", "item"))), "\n",
		tree("p", "x💚y and 统一码"),
	)
	var nodes []*dom.Node
	for _, n := range doc.TextNodes() {
		if !dom.IsBlank(n.Data) {
			nodes = append(nodes, n)
		}
	}
	require.Len(t, nodes, 8)

	for version := 1; version <= 2; version++ {
		for i, start := range nodes {
			for _, end := range nodes[i:] {
				for _, startOffset := range []int{0, start.Length() - 1} {
					for _, endOffset := range []int{1, end.Length()} {
						r := span(start, startOffset, end, endOffset)
						if start == end && startOffset >= endOffset {
							continue
						}
						name := fmt.Sprintf("v%d %q:%d-%q:%d", version, start.Data, startOffset, end.Data, endOffset)

						frag, err := fragment.EncodeRanges(doc, []*dom.Range{r}, version)
						require.NoError(t, err, name)
						require.NotEmpty(t, frag, name)
						assert.Equal(t, r.String(), selectedText(t, doc, frag), name)
						if start == end {
							assert.NotContains(t, frag, ".", "single node uses the short form: %s", name)
						}
					}
				}
			}
		}
	}
}

func TestEncode_MultipleRanges(t *testing.T) {
	t.Parallel()

	bold, italic := dom.NewText("bold"), dom.NewText("italic")
	intro := dom.NewText("Some text that is ")
	doc := page(tree("p", intro, tree("b", bold), " and ", tree("i", italic), "."))

	sel := dom.NewSelection()
	sel.AddRange(span(intro, 18, bold, 4))
	sel.AddRange(span(bold, 4, bold, 4))
	sel.AddRange(span(italic, 0, italic, 6))

	frag, err := fragment.EncodeSelection(doc, sel, fragment.DefaultVersion)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(frag, "#2"), frag)
	assert.Len(t, strings.Split(frag, ","), 2, "collapsed ranges are skipped")

	ranges, err := fragment.DecodeFragment(doc, frag)
	require.NoError(t, err)
	require.Len(t, ranges, 2)
	assert.Equal(t, "bold", ranges[0].String())
	assert.Equal(t, "italic", ranges[1].String())
}

func TestEncode_NothingToAnchor(t *testing.T) {
	t.Parallel()

	title := dom.NewText("Page title")
	gap := dom.NewText("\n   \n")
	body := tree("body", tree("p", "text"), gap, tree("p", "more"))
	root := dom.Append(dom.NewDocumentNode(),
		dom.Append(dom.NewElement("html"), dom.Append(dom.NewElement("head"), dom.Append(dom.NewElement("title"), title)), body))
	doc := dom.NewDocument("", nil, root)

	tests := []struct {
		name    string
		version int
		r       *dom.Range
	}{
		{"collapsed", 1, span(body.FirstChild.FirstChild, 2, body.FirstChild.FirstChild, 2)},
		{"collapsed v2", 2, span(body.FirstChild.FirstChild, 2, body.FirstChild.FirstChild, 2)},
		{"blank only v2", 2, span(gap, 0, gap, 3)},
		{"outside body", 1, span(title, 0, title, 4)},
		{"outside body v2", 2, span(title, 0, title, 4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := fragment.EncodeRanges(doc, []*dom.Range{tc.r}, tc.version)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}

	got, err := fragment.EncodeSelection(doc, dom.NewSelection(), 2)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEncode_UnknownVersion(t *testing.T) {
	t.Parallel()

	doc := dupesPage()
	_, err := fragment.EncodeRanges(doc, nil, 7)
	require.ErrorIs(t, err, fragment.ErrUnknownVersion)
}

func TestEncode_ElementBoundaries(t *testing.T) {
	t.Parallel()

	first, last := dom.NewText("first"), dom.NewText("last")
	list := tree("ul", tree("li", first), "\n", tree("li", last), "\n")
	doc := page(list)

	// The whole list, selected by element offsets.
	r := &dom.Range{StartContainer: list, StartOffset: 0, EndContainer: list, EndOffset: 4}

	v1, err := fragment.EncodeRanges(doc, []*dom.Range{r}, 1)
	require.NoError(t, err)
	// Version 1 ends in the trailing newline node, one of two.
	assert.Equal(t, "#1"+fragment.HashText("first")+":0."+fragment.HashText("\n")+":1~see~0~2", v1)

	v2, err := fragment.EncodeRanges(doc, []*dom.Range{r}, 2)
	require.NoError(t, err)
	assert.Equal(t, "#2"+fragment.HashText("first")+":0."+fragment.HashText("last")+":4", v2)
	assert.Equal(t, "first\nlast", selectedText(t, doc, v2))
}
