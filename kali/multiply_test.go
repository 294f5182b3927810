package kali_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/kalisim/kali"
)

func nor(a, b uint8) uint8 {
	if a|b == 1 {
		return 0
	}
	return 1
}

// sumOnlyProduct evaluates the sum-only scheme on plain integers.
func sumOnlyProduct(a, b uint64, width int) uint64 {
	parts := make([][]uint8, 2*width)
	for i := 0; i < width; i++ {
		for j := 0; j < width; j++ {
			parts[i+j] = append(parts[i+j], uint8((a>>uint(i))&(b>>uint(j))&1))
		}
	}

	var product uint64
	for w, bits := range parts {
		for len(bits) > 2 {
			var next []uint8
			k := len(bits)
			for t := 0; t+2 < k; t += 3 {
				x, y, z := bits[t], bits[t+1], bits[t+2]
				next = append(next, nor(nor(nor(x, y), nor(x, z)), nor(y, z)))
			}
			bits = append(next, bits[k-k%3:]...)
		}

		var v uint8
		switch len(bits) {
		case 1:
			v = bits[0]
		case 2:
			v = nor(bits[0], bits[1])
		}
		product |= uint64(v) << uint(w)
	}
	return product
}

var _ = Describe("Multiply", func() {
	Context("with the sum-only scheme", func() {
		It("should be exact for 1-bit operands", func() {
			for a := uint64(0); a < 2; a++ {
				for b := uint64(0); b < 2; b++ {
					r, err := kali.Multiply(a, b, 1)
					Expect(err).NotTo(HaveOccurred())
					Expect(r.Exact()).To(BeTrue(), "%d*%d", a, b)
					Expect(r.Latency()).To(Equal(uint64(3)))
				}
			}
		})

		It("should match the bit-level model for every 2 and 3-bit pair", func() {
			for width := 2; width <= 3; width++ {
				for a := uint64(0); a < 1<<uint(width); a++ {
					for b := uint64(0); b < 1<<uint(width); b++ {
						r, err := kali.Multiply(a, b, width)
						Expect(err).NotTo(HaveOccurred())
						Expect(r.Product).To(Equal(sumOnlyProduct(a, b, width)),
							"%d*%d in %d bits", a, b, width)
					}
				}
			}
		})

		It("should cost the same for every operand pair", func() {
			first, err := kali.Multiply(0, 0, 8)
			Expect(err).NotTo(HaveOccurred())

			r, err := kali.Multiply(201, 77, 8)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Product).To(Equal(sumOnlyProduct(201, 77, 8)))
			Expect(r.Latency()).To(Equal(first.Latency()))
			Expect(r.Latency()).To(Equal(uint64(304)))
			Expect(r.Energy()).To(Equal(uint64(304)))
		})
	})

	Context("with the carry-save scheme", func() {
		carrySave := kali.WithScheme(kali.SchemeCarrySave)

		It("should compute 5 times 3", func() {
			r, err := kali.Multiply(5, 3, 4, carrySave)
			Expect(err).NotTo(HaveOccurred())

			Expect(r.Product).To(Equal(uint64(15)))
			Expect(r.BitString()).To(Equal("00001111"))
			Expect(r.Exact()).To(BeTrue())
			Expect(r.Latency()).To(Equal(uint64(144)))
			Expect(r.Energy()).To(Equal(uint64(144)))
			Expect(r.Crossbar.Rows()).To(Equal(119))
			Expect(r.ScratchRows).To(Equal(96))

			var latencies []uint64
			for _, sc := range r.Stages {
				latencies = append(latencies, sc.Stats.Latency)
			}
			Expect(latencies).To(Equal([]uint64{48, 0, 54, 42}))
		})

		It("should be exact for every pair up to 4 bits", func() {
			for width := 1; width <= 4; width++ {
				p, err := kali.NewPipeline(width, carrySave)
				Expect(err).NotTo(HaveOccurred())

				for a := uint64(0); a < 1<<uint(width); a++ {
					for b := uint64(0); b < 1<<uint(width); b++ {
						p.Reset()
						r, err := p.Run(a, b)
						Expect(err).NotTo(HaveOccurred())
						Expect(r.Product).To(Equal(a*b), "%d*%d in %d bits", a, b, width)
					}
				}
			}
		})

		DescribeTable("random wide operands",
			func(width, samples int) {
				rng := rand.New(rand.NewSource(int64(width)))
				p, err := kali.NewPipeline(width, carrySave)
				Expect(err).NotTo(HaveOccurred())

				mask := uint64(1)<<uint(width) - 1
				for s := 0; s < samples; s++ {
					a, b := rng.Uint64()&mask, rng.Uint64()&mask

					p.Reset()
					r, err := p.Run(a, b)
					Expect(err).NotTo(HaveOccurred())
					Expect(r.Product).To(Equal(a*b), "%d*%d", a, b)
				}
			},
			Entry("8 bits", 8, 64),
			Entry("16 bits", 16, 16),
			Entry("32 bits", 32, 4),
		)

		It("should handle the widest operands", func() {
			const top = uint64(1)<<32 - 1

			r, err := kali.Multiply(top, top, 32, carrySave)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Product).To(Equal(top * top))
		})
	})

	It("should be deterministic", func() {
		for _, scheme := range []kali.Scheme{kali.SchemeSumOnly, kali.SchemeCarrySave} {
			r1, err := kali.Multiply(11, 6, 4, kali.WithScheme(scheme))
			Expect(err).NotTo(HaveOccurred())
			r2, err := kali.Multiply(11, 6, 4, kali.WithScheme(scheme))
			Expect(err).NotTo(HaveOccurred())

			Expect(r2.Product).To(Equal(r1.Product))
			Expect(r2.Bits).To(Equal(r1.Bits))
			Expect(r2.Stages).To(Equal(r1.Stages))
			Expect(r2.Crossbar.State()).To(Equal(r1.Crossbar.State()))
		}
	})
})
