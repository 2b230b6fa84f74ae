package xactimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLineItemsSingleLine(t *testing.T) {
	lines := SplitLines("5. Remove wet drywall\n5 120.00 SF 1.25 150.00 (30.00) 120.00\n")

	items := ExtractLineItems(lines, nil)

	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, 1, item.LineNumber)
	assert.Equal(t, "Remove wet drywall", item.Description)
	assert.Equal(t, 120.00, item.Quantity)
	assert.Equal(t, "SF", item.Unit)
	assert.Equal(t, 1.25, item.UnitPrice)
	assert.Equal(t, 150.00, item.RCV)
	assert.Equal(t, 30.00, item.Depreciation)
	assert.Equal(t, 120.00, item.ACV)
	assert.Equal(t, 0.0, item.Tax)
	assert.Equal(t, 0.0, item.OAndP)
	assert.Equal(t, CategoryDemolition, item.Category)
	assert.Empty(t, item.Room)
}

const multiLineEstimate = `KITCHEN
1. Tear out wet drywall
120.00 SF
1.25
0.00
30.00
180.00
(0.00)
180.00
cut & bag, per LF

2. Paint the walls - two coats
1,400.00 SF
0.85
<12.00>
0.00
1,202.00
<50.00>
1,152.00
`

func TestExtractLineItemsMultiLine(t *testing.T) {
	items := ExtractLineItems(SplitLines(multiLineEstimate), nil)

	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, 1, first.LineNumber)
	assert.Equal(t, "KITCHEN", first.Room)
	assert.Equal(t, "Tear out wet drywall cut & bag, per LF", first.Description)
	assert.Equal(t, 120.00, first.Quantity)
	assert.Equal(t, "SF", first.Unit)
	assert.Equal(t, 1.25, first.UnitPrice)
	assert.Equal(t, 0.0, first.Tax)
	assert.Equal(t, 30.00, first.OAndP)
	assert.Equal(t, 180.00, first.RCV)
	assert.Equal(t, 0.0, first.Depreciation)
	assert.Equal(t, 180.00, first.ACV)
	assert.Equal(t, CategoryDemolition, first.Category)

	second := items[1]
	assert.Equal(t, 2, second.LineNumber)
	assert.Equal(t, "KITCHEN", second.Room)
	assert.Equal(t, "Paint the walls - two coats", second.Description)
	assert.Equal(t, 1400.00, second.Quantity)
	assert.Equal(t, 12.00, second.Tax)
	assert.Equal(t, 1202.00, second.RCV)
	assert.Equal(t, 50.00, second.Depreciation)
	assert.Equal(t, 1152.00, second.ACV)
	assert.Equal(t, CategoryPainting, second.Category)
}

func TestExtractLineItemsContinuationSkipsTableFurniture(t *testing.T) {
	text := `1. Baseboard - 3 1/4"
80.00 LF
2.10
0.00
0.00
168.00
(16.80)
151.20
Totals: Kitchen
12.00
CONTINUED - Kitchen
`
	items := ExtractLineItems(SplitLines(text), nil)

	require.Len(t, items, 1)
	assert.Equal(t, `Baseboard - 3 1/4"`, items[0].Description)
	assert.Equal(t, CategoryFinishCarpentry, items[0].Category)
}

func TestExtractLineItemsSkipsIncompleteBlocks(t *testing.T) {
	text := `1. Detach & reset toilet
1.00 EA
45.00

2. Unit label first
EA 1.00
10.00
0.00
0.00
10.00
0.00
10.00

3. Trailing header without data`

	items := ExtractLineItems(SplitLines(text), nil)

	assert.Empty(t, items)
}

func TestExtractLineItemsMalformedItemDoesNotStopScan(t *testing.T) {
	text := `1. Remove carpet
1 1.2.3 SF 1.00 10.00 (1.00) 9.00
2. Remove carpet pad
2 100.00 SF 0.50 50.00 (5.00) 45.00
`
	items := ExtractLineItems(SplitLines(text), nil)

	require.Len(t, items, 1)
	assert.Equal(t, "Remove carpet pad", items[0].Description)
	assert.Equal(t, 1, items[0].LineNumber)
}

func TestExtractLineItemsRoomPersists(t *testing.T) {
	text := `MASTER BEDROOM
1. Remove carpet
1 100.00 SF 0.50 50.00 (5.00) 45.00
2. Carpet pad
2 100.00 SF 0.60 60.00 (6.00) 54.00
3. Clean floor
3 100.00 SF 0.30 30.00 (0.00) 30.00
GARAGE
4. Drywall patch
4 1.00 EA 75.00 75.00 (0.00) 75.00
`
	items := ExtractLineItems(SplitLines(text), nil)

	require.Len(t, items, 4)
	assert.Equal(t, "MASTER BEDROOM", items[0].Room)
	assert.Equal(t, "MASTER BEDROOM", items[1].Room)
	assert.Equal(t, "MASTER BEDROOM", items[2].Room)
	assert.Equal(t, "GARAGE", items[3].Room)
}

func TestExtractLineItemsItemHeaderNamingRoomBecomesRoom(t *testing.T) {
	text := `MASTER BEDROOM
1. Remove carpet
1 100.00 SF 0.50 50.00 (5.00) 45.00
2. Clean kitchen floor
2 100.00 SF 0.30 30.00 (0.00) 30.00
3. Carpet pad
3 100.00 SF 0.60 60.00 (6.00) 54.00
`
	require.True(t, IsRoomHeading("2. Clean kitchen floor"))

	items := ExtractLineItems(SplitLines(text), nil)

	require.Len(t, items, 3)
	assert.Equal(t, "MASTER BEDROOM", items[0].Room)
	assert.Equal(t, "2. Clean kitchen floor", items[1].Room)
	assert.Equal(t, "Clean kitchen floor", items[1].Description)
	assert.Equal(t, "2. Clean kitchen floor", items[2].Room)
}

func TestClassifyLayout(t *testing.T) {
	assert.Equal(t, layoutSingleLine, classifyLayout("12 1,020.50 SF 1.25 1,275.63 (127.56) 1,148.07"))
	assert.Equal(t, layoutMultiLine, classifyLayout("120.00 SF"))
	assert.Equal(t, layoutMultiLine, classifyLayout("5 120.00 SF 1.25 150.00 30.00 120.00"))
}

func TestCollectBlockStopsAtNextHeader(t *testing.T) {
	lines := SplitLines("1. First\n1.00 EA\n2.00\n2. Second\n3.00 EA")

	block := collectBlock(lines, 0)

	assert.Equal(t, []string{"1.00 EA", "2.00"}, block)
}

func TestCollectBlockWindow(t *testing.T) {
	lines := []string{"1. Header"}
	for i := 0; i < 20; i++ {
		lines = append(lines, "data")
	}

	assert.Len(t, collectBlock(lines, 0), multiLineWindow)
}
