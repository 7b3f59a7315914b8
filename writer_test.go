package ogma_test

import (
	"bytes"

	"github.com/sirtony/ogma"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Writer", func() {
	var buf *bytes.Buffer
	var subject *ogma.Writer
	var testdata = []byte("testdata")

	BeforeEach(func() {
		buf = new(bytes.Buffer)

		var err error
		subject, err = ogma.NewWriter(buf, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should emit the header up front", func() {
		Expect(buf.Len()).To(Equal(6))
		Expect(buf.Bytes()).To(Equal([]byte{'O', 'G', 'M', 'A', 0x02, 0x00}))
	})

	It("should write empty containers", func() {
		Expect(subject.Close()).To(Succeed())
		Expect(buf.Len()).To(BeNumerically(">", 6))
	})

	It("should write payloads", func() {
		n, err := subject.Write(testdata)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(len(testdata)))
		Expect(subject.Close()).To(Succeed())

		payload, err := ogma.Decode(buf.Bytes())
		Expect(err).NotTo(HaveOccurred())
		Expect(payload).To(Equal(testdata))
	})

	It("should prevent use after close", func() {
		Expect(subject.Close()).To(Succeed())
		Expect(subject.Close()).To(MatchError(`ogma: is closed`))

		_, err := subject.Write(testdata)
		Expect(err).To(MatchError(`ogma: is closed`))
	})
})

var _ = Describe("Encode", func() {
	It("should compress repetitive payloads", func() {
		payload := bytes.Repeat([]byte("testdata"), 4096)

		data, err := ogma.Encode(payload, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(len(data)).To(BeNumerically("<", len(payload)/4))
	})

	It("should clamp excessive compression levels", func() {
		payload := bytes.Repeat([]byte("testdata"), 64)

		data, err := ogma.Encode(payload, &ogma.Options{CompressionLevel: 99})
		Expect(err).NotTo(HaveOccurred())

		out, err := ogma.Decode(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(payload))
	})

	It("should produce equivalent containers at any level", func() {
		payload := seedPayload(4096)

		for level := 1; level <= 11; level++ {
			data, err := ogma.Encode(payload, &ogma.Options{CompressionLevel: level})
			Expect(err).NotTo(HaveOccurred())

			out, err := ogma.Decode(data)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(payload))
		}
	})
})
