package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/riscv5sim/timing/latency"
)

var _ = Describe("Config", func() {
	Describe("Default Config", func() {
		It("should have the documented default latencies", func() {
			config := latency.DefaultConfig()
			Expect(config.RAMWriteLatency).To(Equal(uint64(2)))
			Expect(config.ControlHazardPenalty).To(Equal(uint64(2)))
		})

		It("should create a valid default config", func() {
			config := latency.DefaultConfig()
			Expect(config.Validate()).To(Succeed())
		})
	})

	Describe("Validation", func() {
		It("should reject zero RAM write latency", func() {
			config := latency.DefaultConfig()
			config.RAMWriteLatency = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject zero control hazard penalty", func() {
			config := latency.DefaultConfig()
			config.ControlHazardPenalty = 0
			Expect(config.Validate()).To(HaveOccurred())
		})
	})

	Describe("Clone", func() {
		It("should create an independent copy", func() {
			original := latency.DefaultConfig()
			clone := original.Clone()

			clone.RAMWriteLatency = 100

			Expect(original.RAMWriteLatency).To(Equal(uint64(2)))
			Expect(clone.RAMWriteLatency).To(Equal(uint64(100)))
		})
	})

	Describe("File Operations", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "latency-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should save and load a config", func() {
			original := latency.DefaultConfig()
			original.RAMWriteLatency = 5
			original.ControlHazardPenalty = 3

			path := filepath.Join(tempDir, "timing.json")
			Expect(original.SaveConfig(path)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.RAMWriteLatency).To(Equal(uint64(5)))
			Expect(loaded.ControlHazardPenalty).To(Equal(uint64(3)))
		})

		It("should only override fields present in a partial file", func() {
			path := filepath.Join(tempDir, "partial.json")
			Expect(os.WriteFile(path, []byte(`{"ram_write_latency": 9}`), 0644)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.RAMWriteLatency).To(Equal(uint64(9)))
			Expect(loaded.ControlHazardPenalty).To(Equal(uint64(2)))
		})

		It("should return an error for a non-existent file", func() {
			_, err := latency.LoadConfig(filepath.Join(tempDir, "missing.json"))
			Expect(err).To(HaveOccurred())
		})

		It("should return an error for invalid JSON", func() {
			path := filepath.Join(tempDir, "invalid.json")
			Expect(os.WriteFile(path, []byte("not valid json"), 0644)).To(Succeed())

			_, err := latency.LoadConfig(path)
			Expect(err).To(HaveOccurred())
		})
	})
})
