package input

// processRawKeys decodes medium-raw scancodes. Bytes are forwarded to the
// active session in runs; a run is closed before a stray release and after a
// scancode that triggers a syskey or console switch.
func (d *VT) processRawKeys(buf []byte) {
	sess := d.activeSession()
	start := 0

scan:
	for i := 0; i < len(buf); i++ {
		down := buf[i]&0x80 == 0
		code := uint16(buf[i] & 0x7f)
		orig := i

		if code == 0 {
			// escape: keycode follows as two marked 7-bit fields
			if i+2 >= len(buf) {
				break scan
			}
			hi, lo := buf[i+1], buf[i+2]
			i += 2
			if hi&0x80 == 0 || lo&0x80 == 0 {
				d.logger.Debug("vt: malformed scancode escape", "offset", orig)
				break scan
			}
			code = uint16(hi&0x7f)<<7 | uint16(lo&0x7f)
		}

		if code >= NRKeys {
			continue
		}

		changed, repeat := d.keys.Press(code, down)
		if !changed && !down {
			// release of a key that is not down; the byte is dropped but a
			// modifier still updates its slot
			if orig > start {
				d.deliver(sess, buf[start:orig])
			}
			start = i + 1
		}

		raw, err := d.con.KeymapEntry(uint8(d.keys.ShiftState()), uint8(code))
		if err != nil {
			continue
		}

		var syskey, switchVc uint16
		kv := DecodeKeyValue(raw)
		switch kv.Type {
		case KTLatin:
			if d.opts.Accelerators.Contains(uint16(kv.Value)) {
				syskey = uint16(kv.Value)
			}
		case KTCons:
			switchVc = uint16(kv.Value) + 1
		case KTShift:
			if !repeat && kv.Value < NRShift {
				d.keys.Shift(kv.Value, down)
			}
		case KTFn, KTSpec, KTPad, KTDead, KTCur, KTMeta, KTASCII,
			KTLock, KTLetter, KTSLock, KTDead2, KTBrl:
		default:
		}

		if !down || (syskey == 0 && switchVc == 0) {
			continue
		}

		d.deliver(sess, buf[start:i+1])
		start = i + 1

		if syskey != 0 {
			d.sysKey(syskey)
		} else {
			d.logger.Debug("vt: activate", "vt", switchVc)
			if err := d.con.Activate(int(switchVc)); err != nil {
				d.logger.Debug("vt: activate", "vt", switchVc, "error", err)
			}
		}
	}

	if len(buf) > start {
		d.deliver(sess, buf[start:])
	}
}
