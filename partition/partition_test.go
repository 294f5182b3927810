package partition_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/kalisim/crossbar"
	"github.com/sarchlab/kalisim/partition"
)

var _ = Describe("Manager", func() {
	var m *partition.Manager

	BeforeEach(func() {
		var err error
		m, err = partition.NewManager(8)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should start with empty partitions", func() {
		Expect(m.NumPartitions()).To(Equal(8))
		for id := 0; id < 8; id++ {
			bits, err := m.Partition(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(bits).To(BeEmpty())
		}
	})

	It("should reject a non-positive partition count", func() {
		_, err := partition.NewManager(0)
		Expect(err).To(HaveOccurred())
	})

	It("should append in insertion order", func() {
		Expect(m.Assign(crossbar.Ref(10, 0), 3)).To(Succeed())
		Expect(m.Assign(crossbar.Ref(4, 0), 3)).To(Succeed())
		Expect(m.Assign(crossbar.Ref(7, 0), 3)).To(Succeed())

		bits, err := m.Partition(3)
		Expect(err).NotTo(HaveOccurred())
		Expect(bits).To(Equal([]crossbar.BitRef{
			crossbar.Ref(10, 0), crossbar.Ref(4, 0), crossbar.Ref(7, 0),
		}))
	})

	It("should accept the last id and reject the boundary", func() {
		Expect(m.Assign(crossbar.Ref(0, 0), 7)).To(Succeed())

		err := m.Assign(crossbar.Ref(0, 0), 8)
		Expect(errors.Is(err, partition.ErrOutOfRange)).To(BeTrue())

		err = m.Assign(crossbar.Ref(0, 0), -1)
		Expect(errors.Is(err, partition.ErrOutOfRange)).To(BeTrue())

		_, err = m.Partition(8)
		Expect(errors.Is(err, partition.ErrOutOfRange)).To(BeTrue())
	})

	It("should hand out copies", func() {
		Expect(m.Assign(crossbar.Ref(1, 0), 0)).To(Succeed())

		all := m.All()
		all[0][0] = crossbar.Ref(99, 99)
		all[1] = append(all[1], crossbar.Ref(5, 5))

		bits, _ := m.Partition(0)
		Expect(bits).To(Equal([]crossbar.BitRef{crossbar.Ref(1, 0)}))
		bits, _ = m.Partition(1)
		Expect(bits).To(BeEmpty())
	})

	It("should replace partitions wholesale", func() {
		s := partition.NewSet(8)
		s[2] = []crossbar.BitRef{crossbar.Ref(3, 0)}
		Expect(m.Replace(s)).To(Succeed())

		bits, _ := m.Partition(2)
		Expect(bits).To(Equal([]crossbar.BitRef{crossbar.Ref(3, 0)}))

		Expect(m.Replace(partition.NewSet(4))).NotTo(Succeed())
	})

	It("should reset to empty partitions", func() {
		Expect(m.Assign(crossbar.Ref(1, 0), 5)).To(Succeed())
		m.Reset()

		Expect(m.NumPartitions()).To(Equal(8))
		Expect(m.All().MaxHeight()).To(BeZero())
	})
})

var _ = Describe("Set", func() {
	It("should report heights", func() {
		s := partition.NewSet(3)
		s[0] = []crossbar.BitRef{crossbar.Ref(0, 0)}
		s[2] = []crossbar.BitRef{crossbar.Ref(1, 0), crossbar.Ref(2, 0), crossbar.Ref(3, 0)}

		Expect(s.Heights()).To(Equal([]int{1, 0, 3}))
		Expect(s.MaxHeight()).To(Equal(3))
	})
})
