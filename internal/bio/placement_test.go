package bio

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = ginkgo.Describe("FillSpace", func() {
	var (
		ctx   *testContext
		kind  *Kind
		quiet PlaceOption
	)

	ginkgo.BeforeEach(func() {
		ctx = newTestContext(11)
		kind = MustKind(DefaultCellParams())
		quiet = WithLogger(log.New(io.Discard))
	})

	ginkgo.Context("eight cells in a 20 unit cube", func() {
		var placement *Placement

		ginkgo.BeforeEach(func() {
			var err error
			placement, err = FillSpace(ctx, kind, 8, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{20, 20, 20}, quiet)
			Expect(err).NotTo(HaveOccurred())
		})

		ginkgo.It("uses a 2x2x2 grid", func() {
			g := placement.Grid
			Expect([]int{g.Rows, g.Cols, g.Pages}).To(Equal([]int{2, 2, 2}))
			Expect(g.ColWidth).To(BeNumerically("~", 5, 1e-12))
		})

		ginkgo.It("registers eight distinct cells", func() {
			Expect(ctx.objects).To(HaveLen(8))
			Expect(placement.Cells).To(HaveLen(8))
			seen := map[mgl64.Vec3]bool{}
			for _, c := range placement.Cells {
				Expect(seen).NotTo(HaveKey(c.Origin()))
				seen[c.Origin()] = true
			}
		})

		ginkgo.It("packs rows first, then pages", func() {
			pos := func(i int) mgl64.Vec3 { return placement.Cells[i].Origin() }
			Expect(pos(0).ApproxEqualThreshold(mgl64.Vec3{7.55, 7.55, 7.55}, 1e-9)).To(BeTrue())
			Expect(pos(1).ApproxEqualThreshold(mgl64.Vec3{12.55, 7.55, 7.55}, 1e-9)).To(BeTrue())
			Expect(pos(2).ApproxEqualThreshold(mgl64.Vec3{7.55, 12.55, 7.55}, 1e-9)).To(BeTrue())
			Expect(pos(4).ApproxEqualThreshold(mgl64.Vec3{7.55, 7.55, 12.55}, 1e-9)).To(BeTrue())
			Expect(pos(7).ApproxEqualThreshold(mgl64.Vec3{12.55, 12.55, 12.55}, 1e-9)).To(BeTrue())
		})

		ginkgo.It("warns that the slots are narrower than a cell", func() {
			Expect(placement.Grid.Undersized(kind.Radius())).To(BeTrue())
			Expect(placement.Warnings).To(HaveLen(1))
		})

		ginkgo.It("hands out sequential ids", func() {
			for i, c := range placement.Cells {
				Expect(c.ID()).To(Equal(i))
			}
		})
	})

	ginkgo.Context("a box large enough for every cell", func() {
		minP := mgl64.Vec3{-50, 0, 10}
		maxP := mgl64.Vec3{150, 100, 110}

		ginkgo.It("keeps every center inside the radius clearance", func() {
			p, err := FillSpace(ctx, kind, 27, minP, maxP, quiet)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Warnings).To(BeEmpty())
			Expect(ctx.objects).To(HaveLen(27))

			r := kind.Radius()
			for _, c := range p.Cells {
				o := c.Origin()
				for axis := 0; axis < 3; axis++ {
					Expect(o[axis]).To(BeNumerically(">", minP[axis]+r))
					Expect(o[axis]).To(BeNumerically("<", maxP[axis]-r))
				}
			}
		})

		ginkgo.It("starts with no overlapping cells", func() {
			p, err := FillSpace(ctx, kind, 40, minP, maxP, quiet)
			Expect(err).NotTo(HaveOccurred())
			d := 2 * kind.Radius()
			for i := range p.Cells {
				for j := i + 1; j < len(p.Cells); j++ {
					gap := p.Cells[i].Origin().Sub(p.Cells[j].Origin()).Len()
					Expect(gap).To(BeNumerically(">=", d-1e-9))
				}
			}
		})
	})

	ginkgo.Context("a degenerate box", func() {
		ginkgo.It("rejects the batch before building any cell", func() {
			_, err := FillSpace(ctx, kind, 5, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{100, 10, 100}, quiet)
			Expect(errors.Is(err, ErrDegenerateVolume)).To(BeTrue())

			var verr *VolumeError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Axis).To(Equal("y"))
			Expect(ctx.objects).To(BeEmpty())
			Expect(ctx.nextID).To(Equal(0))
		})

		ginkgo.It("rejects an inverted box", func() {
			_, err := FillSpace(ctx, kind, 1, mgl64.Vec3{50, 50, 50}, mgl64.Vec3{0, 0, 0}, quiet)
			Expect(err).To(MatchError(ErrDegenerateVolume))
		})
	})

	ginkgo.Context("counts", func() {
		ginkgo.It("places nothing for zero cells", func() {
			p, err := FillSpace(ctx, kind, 0, mgl64.Vec3{}, mgl64.Vec3{50, 50, 50}, quiet)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Cells).To(BeEmpty())
			Expect(ctx.objects).To(BeEmpty())
		})

		ginkgo.It("rejects negative counts", func() {
			_, err := FillSpace(ctx, kind, -1, mgl64.Vec3{}, mgl64.Vec3{50, 50, 50}, quiet)
			Expect(err).To(MatchError(ErrInvalidCount))
		})
	})

	ginkgo.Context("with clamping", func() {
		ginkgo.It("places only what fits without overlap", func() {
			p, err := FillSpace(ctx, kind, 100, mgl64.Vec3{}, mgl64.Vec3{40, 40, 40}, quiet, WithClamp())
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Requested).To(Equal(100))
			Expect(len(p.Cells)).To(BeNumerically("<", 100))
			Expect(len(p.Cells)).To(BeNumerically(">", 0))
			Expect(p.Grid.Undersized(kind.Radius())).To(BeFalse())
			Expect(ctx.objects).To(HaveLen(len(p.Cells)))
			Expect(p.Warnings).To(HaveLen(1))
		})

		ginkgo.It("agrees with MaxFit", func() {
			fit, err := MaxFit(kind, 100, mgl64.Vec3{}, mgl64.Vec3{40, 40, 40})
			Expect(err).NotTo(HaveOccurred())
			p, err := FillSpace(ctx, kind, 100, mgl64.Vec3{}, mgl64.Vec3{40, 40, 40}, quiet, WithClamp())
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Cells).To(HaveLen(fit))
		})

		ginkgo.DescribeTable("never places more than requested",
			func(requested int, maxP mgl64.Vec3) {
				p, err := FillSpace(ctx, kind, requested, mgl64.Vec3{}, maxP, quiet, WithClamp())
				Expect(err).NotTo(HaveOccurred())
				Expect(len(p.Cells)).To(BeNumerically("<=", requested))
				Expect(len(p.Cells)).To(BeNumerically(">", 0))
				Expect(p.Grid.Undersized(kind.Radius())).To(BeFalse())
			},
			ginkgo.Entry("flat box, 10 requested", 10, mgl64.Vec3{50, 50, 25}),
			ginkgo.Entry("wide flat box, 17 requested", 17, mgl64.Vec3{60, 60, 25}),
			ginkgo.Entry("tall thin box, 13 requested", 13, mgl64.Vec3{30, 80, 25}),
		)

		ginkgo.It("caps MaxFit at the limit", func() {
			unbounded, err := MaxFit(kind, 1000, mgl64.Vec3{}, mgl64.Vec3{50, 50, 25})
			Expect(err).NotTo(HaveOccurred())
			Expect(unbounded).To(BeNumerically(">", 10))

			capped, err := MaxFit(kind, 10, mgl64.Vec3{}, mgl64.Vec3{50, 50, 25})
			Expect(err).NotTo(HaveOccurred())
			Expect(capped).To(BeNumerically("<=", 10))

			_, err = MaxFit(kind, -1, mgl64.Vec3{}, mgl64.Vec3{50, 50, 25})
			Expect(err).To(MatchError(ErrInvalidCount))
		})

		ginkgo.It("leaves a fitting request alone", func() {
			p, err := FillSpace(ctx, kind, 8, mgl64.Vec3{}, mgl64.Vec3{100, 100, 100}, quiet, WithClamp())
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Cells).To(HaveLen(8))
			Expect(p.Warnings).To(BeEmpty())
		})
	})
})

var _ = ginkgo.Describe("PlanGrid", func() {
	kind := MustKind(DefaultCellParams())

	ginkgo.DescribeTable("capacity covers the count",
		func(n int, maxP mgl64.Vec3) {
			g, err := PlanGrid(kind, n, mgl64.Vec3{}, maxP)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Capacity()).To(BeNumerically(">=", n))
		},
		ginkgo.Entry("single", 1, mgl64.Vec3{20, 20, 20}),
		ginkgo.Entry("cube", 27, mgl64.Vec3{100, 100, 100}),
		ginkgo.Entry("prime count", 97, mgl64.Vec3{100, 100, 100}),
		ginkgo.Entry("wide box", 50, mgl64.Vec3{400, 30, 60}),
		ginkgo.Entry("tall box", 50, mgl64.Vec3{30, 400, 30}),
		ginkgo.Entry("deep box", 1000, mgl64.Vec3{30, 30, 900}),
		ginkgo.Entry("thin slab", 13, mgl64.Vec3{200, 200, 10.5}),
	)

	ginkgo.It("follows the box aspect ratio", func() {
		g, err := PlanGrid(kind, 64, mgl64.Vec3{}, mgl64.Vec3{410, 110, 110})
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Cols).To(BeNumerically(">", g.Rows))
	})
})
