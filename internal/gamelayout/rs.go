package gamelayout

func init() {
	register(RubySapphire, rsLayout{})
}

type rsLayout struct{}

func (rsLayout) TeamSizeOffset() int  { return 0x0234 }
func (rsLayout) DexOwnedOffset() int  { return 0x28 }
func (rsLayout) DexSeenAOffset() int  { return 0x5C }
func (rsLayout) DexSeenBOffset() int  { return 0x938 }
func (rsLayout) DexSeenCOffset() int  { return 0xC0C }
