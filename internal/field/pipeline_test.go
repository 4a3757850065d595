package field_test

import (
	"context"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/emfield/internal/field"
)

var _ = Describe("Params", func() {
	valid := field.Params{Cutoff: 1e12, SampleCount: 10, Dx: 10e-6, Extent: 0.0002}

	It("accepts the reference configuration", func() {
		p := field.Params{Cutoff: 1e12, SampleCount: 1000, Dx: 10e-6, Extent: 0.002}
		Expect(p.Validate()).To(Succeed())
	})

	DescribeTable("rejects invalid values",
		func(mutate func(*field.Params), want error) {
			p := valid
			mutate(&p)
			Expect(p.Validate()).To(MatchError(want))
		},
		Entry("zero samples", func(p *field.Params) { p.SampleCount = 0 }, field.ErrSampleCount),
		Entry("negative cutoff", func(p *field.Params) { p.Cutoff = -1 }, field.ErrCutoff),
		Entry("zero dx", func(p *field.Params) { p.Dx = 0 }, field.ErrStep),
		Entry("zero extent", func(p *field.Params) { p.Extent = 0 }, field.ErrExtent),
		Entry("grid over budget", func(p *field.Params) { p.MaxGridPoints = 1000 }, field.ErrGridTooLarge),
		Entry("huge axis", func(p *field.Params) { p.Dx = 1e-15 }, field.ErrGridTooLarge),
	)
})

var _ = Describe("Run", func() {
	params := field.Params{Cutoff: 1e12, SampleCount: 30, Dx: 10e-6, Extent: 0.0002, Workers: 2}

	It("produces arrays sharing the grid shape", func() {
		r, err := field.Run(context.Background(), params, field.NewSource(5))
		Expect(err).NotTo(HaveOccurred())

		shape := r.Grid.Shape()
		Expect(shape).To(Equal([3]int{20, 20, 20}))
		Expect(r.Fields.E.Shape()).To(Equal(shape))
		Expect(r.Fields.B.Shape()).To(Equal(shape))
		Expect(r.Energy.Shape()).To(Equal(shape))

		X, Y, Z := r.Grid.Mesh()
		Expect(X.Shape()).To(Equal(shape))
		Expect(Y.Shape()).To(Equal(shape))
		Expect(Z.Shape()).To(Equal(shape))
	})

	It("yields non-negative energy", func() {
		r, err := field.Run(context.Background(), params, field.NewSource(6))
		Expect(err).NotTo(HaveOccurred())
		for _, v := range r.Energy.Data {
			Expect(v).To(BeNumerically(">=", 0))
		}
	})

	It("is reproducible for a fixed seed", func() {
		a, err := field.Run(context.Background(), params, field.NewSource(42))
		Expect(err).NotTo(HaveOccurred())
		b, err := field.Run(context.Background(), params, field.NewSource(42))
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Spectrum.Phases).To(Equal(b.Spectrum.Phases))
		Expect(a.Energy.Data).To(Equal(b.Energy.Data))
	})

	It("differs between seeds", func() {
		a, err := field.Run(context.Background(), params, field.NewSource(1))
		Expect(err).NotTo(HaveOccurred())
		b, err := field.Run(context.Background(), params, field.NewSource(2))
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Spectrum.Phases).NotTo(Equal(b.Spectrum.Phases))
	})

	It("records stage timings", func() {
		r, err := field.Run(context.Background(), params, field.NewSource(1))
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Stages).To(HaveKey("synthesis"))
		Expect(r.Stages).To(HaveKey("energy"))
	})

	It("fails fast on invalid params", func() {
		bad := params
		bad.SampleCount = 0
		_, err := field.Run(context.Background(), bad, field.NewSource(1))
		Expect(err).To(MatchError(field.ErrSampleCount))
	})
})

var _ = Describe("Ensemble", func() {
	It("runs every realization with consecutive seeds", func() {
		p := field.Params{Cutoff: 1e12, SampleCount: 10, Dx: 10e-6, Extent: 0.0001, Workers: 1}
		var mu sync.Mutex
		seeds := map[uint64]int{}
		points := map[int]int{}

		err := field.NewEnsemble(p, 4, 100, 2).Run(context.Background(), func(idx int, seed uint64, r *field.Result) error {
			mu.Lock()
			defer mu.Unlock()
			seeds[seed] = idx
			points[idx] = r.Energy.Len()
			return nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(seeds).To(Equal(map[uint64]int{100: 0, 101: 1, 102: 2, 103: 3}))
		Expect(points).To(Equal(map[int]int{0: 1000, 1: 1000, 2: 1000, 3: 1000}))
	})
})
