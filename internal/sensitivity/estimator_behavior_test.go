package sensitivity_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/varsense/internal/sensitivity"
)

var _ = Describe("Estimator", func() {
	sum := sensitivity.Func(func(params, constants []float64) float64 {
		total := 0.0
		for _, p := range params {
			total += p
		}
		return total
	})

	marginals := func(dim int) []sensitivity.Marginal {
		m := make([]sensitivity.Marginal, dim)
		for i := range m {
			m[i] = sensitivity.Marginal{Mean: 0, Variance: 1}
		}
		return m
	}

	Describe("construction", func() {
		It("rejects a nil model", func() {
			_, err := sensitivity.New(nil, nil, []int{1}, marginals(1), 10)
			Expect(err).To(MatchError(sensitivity.ErrNilModel))
		})

		It("rejects out-of-range target indices", func() {
			_, err := sensitivity.New(sum, nil, []int{4}, marginals(3), 10)
			Expect(err).To(MatchError(sensitivity.ErrIndexRange))
		})

		It("collapses duplicate target indices", func() {
			e, err := sensitivity.New(sum, nil, []int{2, 2, 1}, marginals(3), 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Targets()).To(Equal([]int{1, 2}))
		})

		It("exposes the complement of the target set", func() {
			e, err := sensitivity.New(sum, nil, []int{2}, marginals(4), 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Complement()).To(Equal([]int{1, 3, 4}))
		})
	})

	Describe("estimation", func() {
		It("apportions variance equally across symmetric parameters", func() {
			e, err := sensitivity.New(sum, nil, []int{1}, marginals(2), 50000, sensitivity.WithSeed(6))
			Expect(err).NotTo(HaveOccurred())

			total, err := e.Estimate(sensitivity.Opts{})
			Expect(err).NotTo(HaveOccurred())

			// f = p1 + p2, unit variances: each parameter owns half of
			// Var(f) = 2.
			Expect(e.ModelVariance()).To(BeNumerically("~", 2.0, 0.1))
			Expect(e.LowerIndex()).To(BeNumerically("~", 1.0, 0.1))
			Expect(total).To(BeNumerically("~", 1.0, 0.1))
		})

		It("normalizes indices into fractions of the model variance", func() {
			e, err := sensitivity.New(sum, nil, []int{1}, marginals(2), 50000, sensitivity.WithSeed(6))
			Expect(err).NotTo(HaveOccurred())

			total, err := e.Estimate(sensitivity.Opts{Normalize: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(e.LowerIndex()).To(BeNumerically("~", 0.5, 0.05))
			Expect(total).To(BeNumerically("~", 0.5, 0.05))
		})

		It("reports the returned total index through the result snapshot", func() {
			e, err := sensitivity.New(sum, nil, []int{1}, marginals(2), 1000, sensitivity.WithSeed(6))
			Expect(err).NotTo(HaveOccurred())

			total, err := e.Estimate(sensitivity.Opts{})
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Result().TotalIndex).To(Equal(total))
			Expect(e.Result().Samples).To(Equal(1000))
		})
	})

	Describe("diagnostics", func() {
		It("lists configuration and results as labeled lines", func() {
			e, err := sensitivity.New(sum, []float64{1.5}, []int{1}, marginals(2), 100, sensitivity.WithSeed(6))
			Expect(err).NotTo(HaveOccurred())

			out := e.Describe()
			Expect(out).To(ContainSubstring("dim: 2"))
			Expect(out).To(ContainSubstring("samples: 100"))
			Expect(out).To(ContainSubstring("targets: [1]"))
			Expect(out).To(ContainSubstring("p1: normal mean=0 variance=1"))
		})
	})
})
