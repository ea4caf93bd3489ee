package block

// Deep copy functions. Content payloads are values, only slices inside them
// need copying.

// Clone returns deep copy of the block with fresh ids for the block and, for
// pairs, for both children.
func Clone(b Block, alloc Allocator) Block {
	if b.IsPair() {
		return NewPair(alloc.Next(), Clone(*b.Left, alloc), Clone(*b.Right, alloc))
	}
	return Block{ID: alloc.Next(), Kind: b.Kind, Content: CloneContent(b.Content)}
}

// CloneContent returns deep copy of the payload.
func CloneContent(c Content) Content {
	switch v := c.(type) {
	case TableContent:
		v.Data = cloneGrid(v.Data)
		return v
	case CarouselContent:
		if v.Images != nil {
			images := make([]CarouselImage, len(v.Images))
			copy(images, v.Images)
			v.Images = images
		}
		return v
	}
	return c
}

func cloneGrid(data [][]string) [][]string {
	if data == nil {
		return nil
	}
	result := make([][]string, len(data))
	for i := range data {
		if data[i] != nil {
			result[i] = append([]string(nil), data[i]...)
		}
	}
	return result
}
